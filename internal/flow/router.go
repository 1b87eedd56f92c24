// Package flow implements the conversation state machine: it routes a
// user-submitted token through the session's current state to the right
// handler and produces the next response payload.
package flow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vickramb/unibot/internal/content"
	"github.com/vickramb/unibot/internal/observability"
	"github.com/vickramb/unibot/internal/registry"
	"github.com/vickramb/unibot/internal/session"
	"github.com/vickramb/unibot/internal/verify"
)

// Config carries the router's tunables.
type Config struct {
	// DefaultCountryCode is prefixed to bare 10-digit numbers, e.g. "+91".
	DefaultCountryCode string
	// VerifyTimeout bounds every verification gateway call.
	VerifyTimeout time.Duration
}

type stateHandler func(ctx context.Context, sess *session.Session, token string) Response

// Router is a mapping from (session state, submitted token) to the next
// response. It owns no transport concerns; the HTTP layer calls Start,
// Dispatch and Restart.
type Router struct {
	sessions *session.Store
	content  *content.Store
	gateway  verify.Gateway
	registry registry.Store
	metrics  *observability.Metrics
	log      *slog.Logger

	countryCode   string
	verifyTimeout time.Duration

	states map[session.State]stateHandler
}

func NewRouter(
	sessions *session.Store,
	contentStore *content.Store,
	gateway verify.Gateway,
	reg registry.Store,
	metrics *observability.Metrics,
	cfg Config,
) *Router {
	if cfg.DefaultCountryCode == "" {
		cfg.DefaultCountryCode = "+91"
	}
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = 10 * time.Second
	}
	r := &Router{
		sessions:      sessions,
		content:       contentStore,
		gateway:       gateway,
		registry:      reg,
		metrics:       metrics,
		log:           slog.Default().With("component", "flow"),
		countryCode:   cfg.DefaultCountryCode,
		verifyTimeout: cfg.VerifyTimeout,
	}
	r.states = map[session.State]stateHandler{
		StateAwaitingMobile:   r.handleAwaitingMobile,
		StateAwaitingOTP:      r.handleAwaitingOTP,
		StateMainMenu:         r.handleMainMenuState,
		StateSchoolsMenu:      r.handleSchoolsMenu,
		StateCourseSelection:  r.handleCourseSelection,
		StateCourseDetail:     r.handleCourseDetail,
		StateScholarshipsView: r.handleScholarships,
		StateCampusMenu:       r.handleCampus,
		StateCocurricularView: r.handleCocurricular,
		StatePlacementsView:   r.handlePlacements,
	}
	return r
}

// Start returns the pre-session greeting that asks for the user's name.
func (r *Router) Start() Response {
	return Response{
		SessionID: "",
		Messages: []string{
			"Hello! Welcome to ASK GEETA AI. \nI am your virtual guide for Geeta University.",
			"May I know your name so I can address you properly?",
		},
		Buttons:   []Button{},
		InputType: InputText,
	}
}

// Restart deletes the session, if any, and returns the greeting.
func (r *Router) Restart(sessionID string) Response {
	if sessionID != "" {
		r.sessions.Delete(sessionID)
		r.metrics.SessionEvents.WithLabelValues("restarted").Inc()
		r.metrics.ActiveSessions.Set(float64(r.sessions.ActiveCount()))
	}
	return r.Start()
}

// Dispatch processes one inbound message. It never lets an internal fault
// escape: anything unexpected becomes a generic recovery payload.
func (r *Router) Dispatch(ctx context.Context, sessionID, message string) (resp Response) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveDispatchLatency(time.Since(start))
	}()

	message = strings.TrimSpace(message)

	if sessionID == "" {
		return r.beginSession(message)
	}

	sess, err := r.sessions.Get(sessionID)
	if err != nil {
		return Response{
			SessionID: "",
			Messages:  []string{"Session expired. Please restart."},
			Buttons:   []Button{{Label: "Restart", Token: TokenRestart}},
			InputType: InputButton,
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("dispatch panic", "state", string(sess.State), "token", message, "panic", rec)
			r.metrics.DispatchAnomalies.WithLabelValues(string(sess.State), "fault").Inc()
			resp = Response{
				SessionID: sess.ID,
				Messages: []string{
					"Sorry, something went wrong on our side.",
					"Please try again from the Main Menu.",
				},
				Buttons: []Button{
					{Label: "Main Menu", Token: TokenMainMenu},
					{Label: "Exit", Token: TokenExit},
				},
				InputType: InputButton,
			}
		}
	}()

	resp = r.route(ctx, sess, message)
	if resp.SessionID == "" {
		// Exit and restart payloads drop the client session; their buttons
		// are final.
		return resp
	}
	return ensureExit(resp)
}

// beginSession turns the first free-text message (the user's name) into a
// session and prompts for the phone number.
func (r *Router) beginSession(name string) Response {
	if name == "" {
		return r.Start()
	}
	sess := r.sessions.Create(name)
	r.metrics.SessionEvents.WithLabelValues("created").Inc()
	r.metrics.ActiveSessions.Set(float64(r.sessions.ActiveCount()))
	return Response{
		SessionID: sess.ID,
		Messages: []string{
			"Nice to meet you, " + name + "!",
			"To continue, please share your 10-digit mobile number so we can verify it with an SMS code.",
		},
		Buttons:     []Button{},
		InputType:   InputTel,
		Placeholder: "e.g. 9876543210",
	}
}

// route resolves the token in a fixed precedence order: global tokens,
// then menu tokens (outside the verification gate), then the current
// state's handler, then the fallback.
func (r *Router) route(ctx context.Context, sess *session.Session, token string) Response {
	switch token {
	case TokenExit:
		// The server-side session is intentionally kept; only the client
		// reference is dropped.
		return Response{
			SessionID: "",
			Messages: []string{
				"Goodbye, " + sess.DisplayName + "! It was a pleasure assisting you.",
				"Feel free to return anytime.",
			},
			Buttons:   []Button{{Label: "Start Over", Token: TokenRestart}},
			InputType: InputButton,
		}
	case TokenRestart:
		return Response{
			SessionID: "",
			Messages:  []string{"Restarting..."},
			Buttons:   []Button{},
			InputType: InputText,
		}
	case TokenMainMenu:
		r.sessions.UpdateState(sess.ID, StateMainMenu, nil)
		return r.mainMenu(sess.ID, "Welcome back to the Main Menu. What would you like to explore?")
	}

	// While the phone-verification gate is active every free-text input is
	// a phone number or a code, so menu tokens are not resolved here.
	if sess.State == StateAwaitingMobile || sess.State == StateAwaitingOTP {
		return r.states[sess.State](ctx, sess, token)
	}

	if resp, ok := r.menuToken(sess, token); ok {
		return resp
	}

	if handler, ok := r.states[sess.State]; ok {
		return handler(ctx, sess, token)
	}

	// Unrecognized state: degrade to a safe fallback instead of failing.
	r.log.Warn("unrecognized session state", "state", string(sess.State), "session_id", sess.ID)
	return r.fallback(sess)
}

// menuToken resolves the topic-entry and school-selection tokens that are
// valid from every verified screen (back-links rely on this).
func (r *Router) menuToken(sess *session.Session, token string) (Response, bool) {
	switch token {
	case tokenFlowSchools:
		r.sessions.UpdateState(sess.ID, StateSchoolsMenu, nil)
		return r.schoolsMenu(sess.ID), true
	case tokenFlowScholarships:
		r.sessions.UpdateState(sess.ID, StateScholarshipsView, nil)
		return r.scholarshipsMenu(sess.ID), true
	case tokenFlowCampus:
		r.sessions.UpdateState(sess.ID, StateCampusMenu, nil)
		return r.campusMenu(sess.ID), true
	case tokenFlowCocurricular:
		r.sessions.UpdateState(sess.ID, StateCocurricularView, nil)
		return r.cocurricularMenu(sess.ID), true
	case tokenFlowPlacements:
		r.sessions.UpdateState(sess.ID, StatePlacementsView, nil)
		return r.placementsOverview(sess.ID), true
	case tokenFlowContact:
		return r.contactInfo(sess.ID), true
	}
	if id, ok := strings.CutPrefix(token, prefixSchool); ok {
		r.sessions.UpdateState(sess.ID, StateCourseSelection, map[string]string{ctxSelectedSchool: id})
		return r.coursesMenu(sess.ID, id), true
	}
	return Response{}, false
}

// handleMainMenuState catches tokens submitted while at the main menu that
// were not already resolved as global or menu tokens.
func (r *Router) handleMainMenuState(_ context.Context, sess *session.Session, _ string) Response {
	return r.fallback(sess)
}

func (r *Router) mainMenu(sessionID, headline string) Response {
	return Response{
		SessionID: sessionID,
		Messages:  []string{headline},
		Buttons: []Button{
			{Label: "Explore Schools & Courses", Token: tokenFlowSchools},
			{Label: "Scholarships & Financial Aid", Token: tokenFlowScholarships},
			{Label: "Campus & Facilities", Token: tokenFlowCampus},
			{Label: "Co-curricular & Student Activities", Token: tokenFlowCocurricular},
			{Label: "Placements Overview", Token: tokenFlowPlacements},
			{Label: "Contact University", Token: tokenFlowContact},
			{Label: "Exit", Token: TokenExit},
		},
		InputType: InputButton,
	}
}

func (r *Router) fallback(sess *session.Session) Response {
	r.metrics.DispatchAnomalies.WithLabelValues(string(sess.State), "fallback").Inc()
	return Response{
		SessionID: sess.ID,
		Messages: []string{
			"I'm sorry, I didn't catch that.",
			"Please select an option from the menu.",
		},
		Buttons:   []Button{{Label: "Back to Main Menu", Token: TokenMainMenu}},
		InputType: InputButton,
	}
}
