package flow

import (
	"context"
	"strings"

	"github.com/vickramb/unibot/internal/session"
)

func (r *Router) schoolsMenu(sessionID string) Response {
	schools := r.content.Schools()
	buttons := make([]Button, 0, len(schools)+1)
	for _, s := range schools {
		buttons = append(buttons, Button{Label: s.Name, Token: prefixSchool + s.ID})
	}
	buttons = append(buttons, Button{Label: "Back to Main Menu", Token: TokenMainMenu})

	return Response{
		SessionID: sessionID,
		Messages: []string{
			"Here are the various Schools at Geeta University.",
			"Please select one to view its courses.",
		},
		Buttons:   buttons,
		InputType: InputButton,
	}
}

// handleSchoolsMenu reacts to a school selection. school_<id> tokens are
// normally resolved as menu tokens before reaching here, so this mostly
// renders the topic-scoped invalid-selection view.
func (r *Router) handleSchoolsMenu(_ context.Context, sess *session.Session, token string) Response {
	if id, ok := strings.CutPrefix(token, prefixSchool); ok {
		r.sessions.UpdateState(sess.ID, StateCourseSelection, map[string]string{ctxSelectedSchool: id})
		return r.coursesMenu(sess.ID, id)
	}
	return r.invalidSelection(sess.ID, tokenFlowSchools)
}

func (r *Router) invalidSelection(sessionID, backToken string) Response {
	return Response{
		SessionID: sessionID,
		Messages:  []string{"Invalid selection."},
		Buttons:   []Button{{Label: "Back", Token: backToken}},
		InputType: InputButton,
	}
}
