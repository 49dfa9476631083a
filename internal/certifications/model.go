package certifications

// Certification is one credential owned by a resume.
type Certification struct {
	ID            string
	ResumeID      string
	Name          string
	Issuer        string
	IssueDate     string
	ExpiryDate    string
	CredentialID  string
	CredentialURL string
}
