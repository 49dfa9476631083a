package projects

// Project is one portfolio entry owned by a resume. Dates are free-form
// strings, as submitted.
type Project struct {
	ID           string
	ResumeID     string
	Name         string
	Description  string
	Technologies []string
	URL          string
	StartDate    string
	EndDate      string
}
