package resumes

import "context"

// Child record shapes as embedded in resume responses. The child packages own
// their full models; adapters in bootstrap convert between the two.

type ExperienceRecord struct {
	ID          string
	Company     string
	Title       string
	StartDate   string
	EndDate     string
	Description string
	SkillsUsed  []string
}

type EducationRecord struct {
	ID          string
	Institution string
	Degree      string
	StartDate   string
	EndDate     string
	GPA         string
	Description string
}

type SkillRecord struct {
	ID          string
	Name        string
	Proficiency string
	Category    string
}

type ProjectRecord struct {
	ID           string
	Name         string
	Description  string
	Technologies []string
	URL          string
	StartDate    string
	EndDate      string
}

type CertificationRecord struct {
	ID            string
	Name          string
	Issuer        string
	IssueDate     string
	ExpiryDate    string
	CredentialID  string
	CredentialURL string
}

// ExperienceSource exposes the experience rows owned by a resume.
type ExperienceSource interface {
	ListByResume(ctx context.Context, resumeID string) ([]ExperienceRecord, error)
	DeleteByResume(ctx context.Context, resumeID string) error
}

// EducationSource exposes the education rows owned by a resume.
type EducationSource interface {
	ListByResume(ctx context.Context, resumeID string) ([]EducationRecord, error)
	DeleteByResume(ctx context.Context, resumeID string) error
}

// SkillSource exposes the skill rows owned by a resume.
type SkillSource interface {
	ListByResume(ctx context.Context, resumeID string) ([]SkillRecord, error)
	DeleteByResume(ctx context.Context, resumeID string) error
}

// ProjectSource exposes the project rows owned by a resume.
type ProjectSource interface {
	ListByResume(ctx context.Context, resumeID string) ([]ProjectRecord, error)
	DeleteByResume(ctx context.Context, resumeID string) error
}

// CertificationSource exposes the certification rows owned by a resume.
type CertificationSource interface {
	ListByResume(ctx context.Context, resumeID string) ([]CertificationRecord, error)
	DeleteByResume(ctx context.Context, resumeID string) error
}

// Children bundles all child rows of one resume for detail responses.
type Children struct {
	Experience     []ExperienceRecord
	Education      []EducationRecord
	Skills         []SkillRecord
	Projects       []ProjectRecord
	Certifications []CertificationRecord
}
