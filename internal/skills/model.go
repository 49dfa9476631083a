package skills

// Skill is a single named skill attached to a resume.
type Skill struct {
	ID          string
	ResumeID    string
	Name        string
	Proficiency string
	Category    string
}
