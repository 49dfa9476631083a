package certifications

// CertificationResponse is the outward-facing representation of a certification.
type CertificationResponse struct {
	ID            string `json:"id"`
	Resume        string `json:"resume"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	CredentialID  string `json:"credential_id"`
	CredentialURL string `json:"credential_url"`
}

func toResponse(cert Certification) CertificationResponse {
	return CertificationResponse{
		ID:            cert.ID,
		Resume:        cert.ResumeID,
		Name:          cert.Name,
		Issuer:        cert.Issuer,
		IssueDate:     cert.IssueDate,
		ExpiryDate:    cert.ExpiryDate,
		CredentialID:  cert.CredentialID,
		CredentialURL: cert.CredentialURL,
	}
}
