package flow

import (
	"context"
	"strings"

	"github.com/vickramb/unibot/internal/session"
)

func (r *Router) cocurricularMenu(sessionID string) Response {
	events := r.content.Events()
	buttons := make([]Button, 0, len(events)+1)
	for _, e := range events {
		buttons = append(buttons, Button{Label: e.Name, Token: prefixEvent + e.Name})
	}
	buttons = append(buttons, Button{Label: "Back to Main Menu", Token: TokenMainMenu})

	return Response{
		SessionID: sessionID,
		Messages: []string{
			"Experience life beyond academics at Geeta University.",
			"Select an event to know more:",
		},
		Buttons:   buttons,
		InputType: InputButton,
	}
}

func (r *Router) handleCocurricular(_ context.Context, sess *session.Session, token string) Response {
	name, ok := strings.CutPrefix(token, prefixEvent)
	if !ok {
		return r.invalidSelection(sess.ID, tokenFlowCocurricular)
	}
	selected, ok := r.content.Event(name)
	if !ok {
		return r.invalidSelection(sess.ID, tokenFlowCocurricular)
	}
	return Response{
		SessionID: sess.ID,
		Messages: []string{
			"**" + selected.Name + "** (" + selected.Type + ")",
			selected.Description,
		},
		Buttons: []Button{
			{Label: "View Other Events", Token: tokenFlowCocurricular},
			{Label: "Main Menu", Token: TokenMainMenu},
		},
		InputType: InputButton,
	}
}
