package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/vickramb/unibot/internal/session"
)

func (r *Router) scholarshipsMenu(sessionID string) Response {
	scholarships := r.content.Scholarships()
	buttons := make([]Button, 0, len(scholarships)+1)
	for _, s := range scholarships {
		buttons = append(buttons, Button{Label: s.Title, Token: prefixScholarship + s.Title})
	}
	buttons = append(buttons, Button{Label: "Back to Main Menu", Token: TokenMainMenu})

	return Response{
		SessionID: sessionID,
		Messages: []string{
			fmt.Sprintf("Geeta University offers %d types of scholarships.", len(scholarships)),
		},
		Buttons:   buttons,
		InputType: InputButton,
	}
}

func (r *Router) handleScholarships(_ context.Context, sess *session.Session, token string) Response {
	title, ok := strings.CutPrefix(token, prefixScholarship)
	if !ok {
		return r.invalidSelection(sess.ID, tokenFlowScholarships)
	}
	selected, ok := r.content.Scholarship(title)
	if !ok {
		return r.invalidSelection(sess.ID, tokenFlowScholarships)
	}
	return Response{
		SessionID: sess.ID,
		Messages:  []string{"**" + selected.Title + "**", selected.Description},
		Buttons: []Button{
			{Label: "View Other Scholarships", Token: tokenFlowScholarships},
			{Label: "Main Menu", Token: TokenMainMenu},
		},
		InputType: InputButton,
	}
}
