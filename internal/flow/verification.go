package flow

import (
	"context"
	"errors"

	"github.com/vickramb/unibot/internal/session"
	"github.com/vickramb/unibot/internal/verify"
)

// handleAwaitingMobile treats the token as a phone number, normalizes it
// and asks the gateway to send a one-time code.
func (r *Router) handleAwaitingMobile(ctx context.Context, sess *session.Session, token string) Response {
	phone, err := NormalizePhone(token, r.countryCode)
	if err != nil {
		return r.phonePrompt(sess.ID,
			"That doesn't look like a valid mobile number.",
			"Please enter a 10-digit mobile number, or a full number starting with +.")
	}

	callCtx, cancel := context.WithTimeout(ctx, r.verifyTimeout)
	defer cancel()
	if err := r.gateway.SendChallenge(callCtx, phone); err != nil {
		r.metrics.VerifyRequests.WithLabelValues("send", sendOutcome(err)).Inc()
		r.log.Warn("send challenge failed", "session_id", sess.ID, "error", err)
		switch {
		case errors.Is(err, verify.ErrInvalidNumber):
			return r.phonePrompt(sess.ID,
				"That number doesn't appear to be valid.",
				"Please check it and enter your mobile number again.")
		case errors.Is(err, verify.ErrUnsupportedChannel):
			return r.phonePrompt(sess.ID,
				"We can't deliver an SMS to that number.",
				"Please provide a mobile number that can receive text messages.")
		default:
			return r.phonePrompt(sess.ID,
				"We couldn't send the verification code right now.",
				"Please try again in a moment.")
		}
	}
	r.metrics.VerifyRequests.WithLabelValues("send", "ok").Inc()

	// Issuing a new challenge supersedes any previous number association.
	r.sessions.UpdateState(sess.ID, StateAwaitingOTP, map[string]string{ctxMobile: phone})
	return Response{
		SessionID: sess.ID,
		Messages: []string{
			"We've sent a 6-digit verification code to " + phone + ".",
			"Please enter the code to continue.",
		},
		Buttons:     []Button{},
		InputType:   InputText,
		Placeholder: "6-digit code",
	}
}

// handleAwaitingOTP checks the submitted code against the outstanding
// challenge. Retries are unlimited; the user resubmitting is the retry
// mechanism.
func (r *Router) handleAwaitingOTP(ctx context.Context, sess *session.Session, token string) Response {
	phone := sess.Context[ctxMobile]
	if phone == "" {
		// No outstanding challenge; fall back to collecting the number.
		r.sessions.UpdateState(sess.ID, StateAwaitingMobile, nil)
		return r.phonePrompt(sess.ID,
			"Let's try that again.",
			"Please share your 10-digit mobile number.")
	}

	callCtx, cancel := context.WithTimeout(ctx, r.verifyTimeout)
	defer cancel()
	approved, err := r.gateway.CheckChallenge(callCtx, phone, token)
	if err != nil {
		r.metrics.VerifyRequests.WithLabelValues("check", "error").Inc()
		r.log.Warn("check challenge failed", "session_id", sess.ID, "error", err)
		return Response{
			SessionID:   sess.ID,
			Messages:    []string{"We couldn't verify the code right now.", "Please try entering it again."},
			Buttons:     []Button{},
			InputType:   InputText,
			Placeholder: "6-digit code",
		}
	}
	if !approved {
		r.metrics.VerifyRequests.WithLabelValues("check", "rejected").Inc()
		return Response{
			SessionID:   sess.ID,
			Messages:    []string{"That code doesn't match.", "Please check the SMS and try again."},
			Buttons:     []Button{},
			InputType:   InputText,
			Placeholder: "6-digit code",
		}
	}
	r.metrics.VerifyRequests.WithLabelValues("check", "approved").Inc()

	if _, err := r.registry.Register(ctx, sess.DisplayName, phone); err != nil {
		// Verification itself succeeded; losing the registry write must
		// not lock the user out of the menu.
		r.log.Error("registry write failed", "session_id", sess.ID, "error", err)
	} else {
		r.metrics.RegistryWrites.Inc()
	}

	r.sessions.UpdateState(sess.ID, StateMainMenu, nil)
	resp := r.mainMenu(sess.ID, "How can I help you today?")
	resp.Messages = append([]string{"You're verified, " + sess.DisplayName + "!"}, resp.Messages...)
	return resp
}

func (r *Router) phonePrompt(sessionID string, messages ...string) Response {
	return Response{
		SessionID:   sessionID,
		Messages:    messages,
		Buttons:     []Button{},
		InputType:   InputTel,
		Placeholder: "e.g. 9876543210",
	}
}

func sendOutcome(err error) string {
	switch {
	case errors.Is(err, verify.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, verify.ErrUnsupportedChannel):
		return "unsupported_channel"
	default:
		return "transient"
	}
}
