package experiences

// Experience is one work-history entry owned by a resume. Dates are free-form
// strings, as submitted.
type Experience struct {
	ID          string
	ResumeID    string
	Company     string
	Title       string
	StartDate   string
	EndDate     string
	Description string
	SkillsUsed  []string
}
