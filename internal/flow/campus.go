package flow

import (
	"context"

	"github.com/vickramb/unibot/internal/content"
	"github.com/vickramb/unibot/internal/session"
)

func (r *Router) campusMenu(sessionID string) Response {
	return Response{
		SessionID: sessionID,
		Messages:  []string{"Explore our World Class Infrastructure and Facilities."},
		Buttons: []Button{
			{Label: "Academic Infrastructure", Token: "campus_infrastructure"},
			{Label: "Student Facilities", Token: "campus_facilities"},
			{Label: "Back to Main Menu", Token: TokenMainMenu},
		},
		InputType: InputButton,
	}
}

func (r *Router) handleCampus(_ context.Context, sess *session.Session, token string) Response {
	campus := r.content.Campus()
	switch token {
	case "campus_infrastructure":
		return Response{
			SessionID: sess.ID,
			Messages:  campusMessages("**Academic Infrastructure**", campus.Infrastructure),
			Buttons: []Button{
				{Label: "View Facilities", Token: "campus_facilities"},
				{Label: "Back to Campus Menu", Token: tokenFlowCampus},
				{Label: "Main Menu", Token: TokenMainMenu},
			},
			InputType: InputButton,
		}
	case "campus_facilities":
		return Response{
			SessionID: sess.ID,
			Messages:  campusMessages("**Student Facilities**", campus.Facilities),
			Buttons: []Button{
				{Label: "View Infrastructure", Token: "campus_infrastructure"},
				{Label: "Back to Campus Menu", Token: tokenFlowCampus},
				{Label: "Main Menu", Token: TokenMainMenu},
			},
			InputType: InputButton,
		}
	}
	return r.invalidSelection(sess.ID, tokenFlowCampus)
}

func campusMessages(heading string, items []content.CampusItem) []string {
	messages := []string{heading}
	for _, item := range items {
		messages = append(messages, "**"+item.Title+"**: "+item.Description)
	}
	return messages
}
