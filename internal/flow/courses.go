package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/vickramb/unibot/internal/content"
	"github.com/vickramb/unibot/internal/session"
)

func (r *Router) coursesMenu(sessionID, schoolID string) Response {
	courses := r.content.Courses(schoolID)
	if len(courses) == 0 {
		return Response{
			SessionID: sessionID,
			Messages:  []string{"No courses found for this school yet."},
			Buttons:   []Button{{Label: "Back to Schools", Token: tokenFlowSchools}},
			InputType: InputButton,
		}
	}

	buttons := make([]Button, 0, len(courses)+1)
	for _, c := range courses {
		buttons = append(buttons, Button{Label: c.Name, Token: prefixCourse + c.ID})
	}
	buttons = append(buttons, Button{Label: "Back to Schools", Token: tokenFlowSchools})

	return Response{
		SessionID: sessionID,
		Messages:  []string{"Here are the courses offered."},
		Buttons:   buttons,
		InputType: InputButton,
	}
}

// handleCourseSelection resolves a course_<id> token against the school
// remembered in the session context.
func (r *Router) handleCourseSelection(_ context.Context, sess *session.Session, token string) Response {
	courseID, ok := strings.CutPrefix(token, prefixCourse)
	if !ok {
		return r.invalidSelection(sess.ID, tokenFlowSchools)
	}
	return r.openCourse(sess, courseID)
}

func (r *Router) openCourse(sess *session.Session, courseID string) Response {
	schoolID := sess.Context[ctxSelectedSchool]
	course, ok := r.content.Course(schoolID, courseID)
	if !ok {
		// Stale token: content is static and load-once, so the record is gone
		// for good. Route the user back rather than failing.
		return Response{
			SessionID: sess.ID,
			Messages:  []string{"Course details not found."},
			Buttons:   []Button{{Label: "Back", Token: prefixSchool + schoolID}},
			InputType: InputButton,
		}
	}

	if course.Details == nil {
		return Response{
			SessionID: sess.ID,
			Messages: []string{
				"**" + course.Name + "**",
				"Detailed information is currently being updated.",
				"Please contact the university for more details.",
			},
			Buttons: []Button{
				{Label: "Back to Courses", Token: prefixSchool + schoolID},
				{Label: "Contact University", Token: tokenFlowContact},
			},
			InputType: InputButton,
		}
	}

	r.sessions.UpdateState(sess.ID, StateCourseDetail, map[string]string{ctxSelectedCourse: courseID})
	return Response{
		SessionID: sess.ID,
		Messages: []string{
			"**" + course.Name + "**",
			course.Details.Overview,
			"What would you like to know?",
		},
		Buttons: []Button{
			{Label: "Curriculum / Subjects", Token: "detail_curriculum"},
			{Label: "Career Prospects", Token: "detail_career"},
			{Label: "Eligibility", Token: "detail_eligibility"},
			{Label: "Scholarships", Token: "detail_scholarships"},
			{Label: "Fees", Token: "detail_fees"},
			{Label: "Back to Courses", Token: prefixSchool + schoolID},
		},
		InputType: InputButton,
	}
}

// handleCourseDetail renders one facet of the course remembered in context.
func (r *Router) handleCourseDetail(_ context.Context, sess *session.Session, token string) Response {
	if courseID, ok := strings.CutPrefix(token, prefixCourse); ok {
		// Back to the course's facet menu.
		return r.openCourse(sess, courseID)
	}

	schoolID := sess.Context[ctxSelectedSchool]
	courseID := sess.Context[ctxSelectedCourse]
	course, ok := r.content.Course(schoolID, courseID)
	if !ok || course.Details == nil {
		return Response{
			SessionID: sess.ID,
			Messages:  []string{"Error retrieving details."},
			Buttons:   []Button{{Label: "Back", Token: prefixSchool + schoolID}},
			InputType: InputButton,
		}
	}

	facet, ok := strings.CutPrefix(token, prefixDetail)
	if !ok {
		return r.invalidSelection(sess.ID, prefixCourse+courseID)
	}

	messages := renderFacet(course.Details, facet)
	if messages == nil {
		return r.invalidSelection(sess.ID, prefixCourse+courseID)
	}

	return Response{
		SessionID: sess.ID,
		Messages:  messages,
		Buttons: []Button{
			{Label: "Back to Course Menu", Token: prefixCourse + courseID},
			{Label: "Main Menu", Token: TokenMainMenu},
		},
		InputType: InputButton,
	}
}

func renderFacet(details *content.CourseDetails, facet string) []string {
	switch facet {
	case "curriculum":
		messages := []string{"**Curriculum Highlights:**"}
		for _, item := range details.Curriculum {
			messages = append(messages, "- "+item)
		}
		return messages
	case "career":
		messages := []string{"**Career Prospects:**"}
		for _, item := range details.CareerProspects {
			messages = append(messages, "- "+item)
		}
		return messages
	case "eligibility":
		return []string{"**Eligibility Criteria:**", details.Eligibility}
	case "scholarships":
		return []string{"**Scholarships:**", details.Scholarships}
	case "fees":
		messages := []string{"**Program Fees:**"}
		if details.Fees == nil {
			return append(messages, "Fee information is not available for this program.")
		}
		messages = append(messages,
			fmt.Sprintf("**Program Fee per Semester:** ₹%s", groupDigits(details.Fees.ProgramFeePerSem)),
			fmt.Sprintf("**Tuition Fee:** ₹%s", groupDigits(details.Fees.TuitionFee)),
		)
		if details.Fees.Level != "" {
			messages = append(messages, "**Level:** "+details.Fees.Level)
		}
		return messages
	default:
		return nil
	}
}

// groupDigits formats a non-negative amount with thousands separators.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
