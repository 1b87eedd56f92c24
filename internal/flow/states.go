package flow

import "github.com/vickramb/unibot/internal/session"

// Conversation states. EntryState is what a freshly created session gets;
// the course being inspected in StateCourseDetail rides in the session
// context, not in the state value.
const (
	StateAwaitingMobile   session.State = "awaiting_mobile"
	StateAwaitingOTP      session.State = "awaiting_otp"
	StateMainMenu         session.State = "main_menu"
	StateSchoolsMenu      session.State = "schools_menu"
	StateCourseSelection  session.State = "course_selection"
	StateCourseDetail     session.State = "course_detail"
	StateScholarshipsView session.State = "scholarships_view"
	StateCampusMenu       session.State = "campus_menu"
	StateCocurricularView session.State = "cocurricular_view"
	StatePlacementsView   session.State = "placements_view"
)

// EntryState is the state assigned right after the greeting collects a name.
const EntryState = StateAwaitingMobile

// Session context keys.
const (
	ctxMobile         = "mobile"
	ctxSelectedSchool = "selected_school"
	ctxSelectedCourse = "selected_course"
)

// Global tokens, honored before any state handler.
const (
	TokenExit     = "exit"
	TokenRestart  = "restart"
	TokenMainMenu = "main_menu"
)

// Topic entry tokens.
const (
	tokenFlowSchools      = "flow_schools"
	tokenFlowScholarships = "flow_scholarships"
	tokenFlowCampus       = "flow_campus"
	tokenFlowCocurricular = "flow_cocurricular"
	tokenFlowPlacements   = "flow_placements"
	tokenFlowContact      = "flow_contact"
)

// Drill-down token prefixes.
const (
	prefixSchool      = "school_"
	prefixCourse      = "course_"
	prefixScholarship = "scholarship_"
	prefixEvent       = "event_"
	prefixDetail      = "detail_"
)
