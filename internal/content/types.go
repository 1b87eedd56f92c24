package content

// School is one academic school users can browse.
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Course is a program offered by a school. A nil Details block means the
// detailed write-up is not published yet ("coming soon"), not an error.
type Course struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Details *CourseDetails `json:"details,omitempty"`
}

type CourseDetails struct {
	Overview        string        `json:"overview"`
	Curriculum      []string      `json:"curriculum"`
	CareerProspects []string      `json:"career_prospects"`
	Eligibility     string        `json:"eligibility"`
	Scholarships    string        `json:"scholarships"`
	Fees            *FeeBreakdown `json:"fees,omitempty"`
}

type FeeBreakdown struct {
	ProgramFeePerSem int    `json:"prog_fee_per_sem"`
	TuitionFee       int    `json:"tuition_fee"`
	Level            string `json:"level,omitempty"`
}

type Scholarship struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CampusItem is one infrastructure or facility entry.
type CampusItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Campus struct {
	Infrastructure []CampusItem `json:"infrastructure"`
	Facilities     []CampusItem `json:"facilities"`
}

type PlacementStats struct {
	HighestPackage   string `json:"highest_package"`
	AveragePackage   string `json:"average_package"`
	CompaniesVisited string `json:"companies_visited"`
}

type Placements struct {
	Overview      string         `json:"overview"`
	Stats         PlacementStats `json:"statistics"`
	TopRecruiters []string       `json:"top_recruiters"`
	Activities    []string       `json:"activities"`
}

// Event is a co-curricular event or club activity.
type Event struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}
