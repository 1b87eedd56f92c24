package flow

import (
	"context"
	"strings"

	"github.com/vickramb/unibot/internal/session"
)

func (r *Router) placementsOverview(sessionID string) Response {
	p := r.content.Placements()
	return Response{
		SessionID: sessionID,
		Messages: []string{
			"**Placement Overview**",
			p.Overview,
			"**Highest Package**: " + p.Stats.HighestPackage,
			"**Average Package**: " + p.Stats.AveragePackage,
			"**Companies Visited**: " + p.Stats.CompaniesVisited,
		},
		Buttons: []Button{
			{Label: "Top Recruiters", Token: "placements_recruiters"},
			{Label: "Training Activities", Token: "placements_activities"},
			{Label: "Back to Main Menu", Token: TokenMainMenu},
		},
		InputType: InputButton,
	}
}

func (r *Router) handlePlacements(_ context.Context, sess *session.Session, token string) Response {
	p := r.content.Placements()
	switch token {
	case "placements_recruiters":
		return Response{
			SessionID: sess.ID,
			Messages:  []string{"**Top Recruiters**", strings.Join(p.TopRecruiters, ", ")},
			Buttons: []Button{
				{Label: "Training Activities", Token: "placements_activities"},
				{Label: "Back", Token: tokenFlowPlacements},
			},
			InputType: InputButton,
		}
	case "placements_activities":
		messages := []string{"**Placement Support Activities**"}
		for _, a := range p.Activities {
			messages = append(messages, "- "+a)
		}
		return Response{
			SessionID: sess.ID,
			Messages:  messages,
			Buttons: []Button{
				{Label: "Top Recruiters", Token: "placements_recruiters"},
				{Label: "Back", Token: tokenFlowPlacements},
			},
			InputType: InputButton,
		}
	}
	return r.invalidSelection(sess.ID, tokenFlowPlacements)
}
