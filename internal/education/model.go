package education

// Education is one education-history entry owned by a resume.
type Education struct {
	ID          string
	ResumeID    string
	Institution string
	Degree      string
	StartDate   string
	EndDate     string
	GPA         string
	Description string
}
