package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume with its
// child records embedded.
type ResumeResponse struct {
	ID               string               `json:"id"`
	FullName         string               `json:"full_name"`
	Email            string               `json:"email"`
	Phone            string               `json:"phone"`
	Location         string               `json:"location"`
	LinkedInURL      string               `json:"linkedin_url"`
	GitHubURL        string               `json:"github_url"`
	Summary          string               `json:"summary"`
	ResumeFile       *string              `json:"resume_file"`
	OriginalFilename string               `json:"original_filename,omitempty"`
	SizeBytes        int64                `json:"size_bytes,omitempty"`
	Checksum         string               `json:"checksum,omitempty"`
	AadharDocument   *string              `json:"aadhar_document"`
	PanDocument      *string              `json:"pan_document"`
	Status           string               `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Experience       []ExperienceEntry    `json:"experience"`
	Education        []EducationEntry     `json:"education"`
	Skills           []SkillEntry         `json:"skills"`
	Projects         []ProjectEntry       `json:"projects"`
	Certifications   []CertificationEntry `json:"certifications"`
}

type ExperienceEntry struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
	SkillsUsed  []string `json:"skills_used"`
}

type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

type SkillEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
	Category    string `json:"category"`
}

type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
}

type CertificationEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	CredentialID  string `json:"credential_id"`
	CredentialURL string `json:"credential_url"`
}

// UploadResponse is the body returned by the upload endpoint.
type UploadResponse struct {
	ID         string    `json:"id"`
	ResumeFile string    `json:"resume_file"`
	CreatedAt  time.Time `json:"created_at"`
	Message    string    `json:"message"`
}

func toResponse(res Resume, fileURL, aadharURL, panURL string, ch Children) ResumeResponse {
	optional := func(url string) *string {
		if url == "" {
			return nil
		}
		return &url
	}

	out := ResumeResponse{
		ID:               res.ID,
		FullName:         res.FullName,
		Email:            res.Email,
		Phone:            res.Phone,
		Location:         res.Location,
		LinkedInURL:      res.LinkedInURL,
		GitHubURL:        res.GitHubURL,
		Summary:          res.Summary,
		ResumeFile:       optional(fileURL),
		OriginalFilename: res.OriginalFilename,
		SizeBytes:        res.SizeBytes,
		Checksum:         res.Checksum,
		AadharDocument:   optional(aadharURL),
		PanDocument:      optional(panURL),
		Status:           string(res.Status),
		CreatedAt:        res.CreatedAt,
		UpdatedAt:        res.UpdatedAt,
		Experience:       make([]ExperienceEntry, 0, len(ch.Experience)),
		Education:        make([]EducationEntry, 0, len(ch.Education)),
		Skills:           make([]SkillEntry, 0, len(ch.Skills)),
		Projects:         make([]ProjectEntry, 0, len(ch.Projects)),
		Certifications:   make([]CertificationEntry, 0, len(ch.Certifications)),
	}
	for _, e := range ch.Experience {
		skills := e.SkillsUsed
		if skills == nil {
			skills = []string{}
		}
		out.Experience = append(out.Experience, ExperienceEntry{
			ID:          e.ID,
			Company:     e.Company,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
			SkillsUsed:  skills,
		})
	}
	for _, e := range ch.Education {
		out.Education = append(out.Education, EducationEntry{
			ID:          e.ID,
			Institution: e.Institution,
			Degree:      e.Degree,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			GPA:         e.GPA,
			Description: e.Description,
		})
	}
	for _, s := range ch.Skills {
		out.Skills = append(out.Skills, SkillEntry{
			ID:          s.ID,
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Category:    s.Category,
		})
	}
	for _, p := range ch.Projects {
		tech := p.Technologies
		if tech == nil {
			tech = []string{}
		}
		out.Projects = append(out.Projects, ProjectEntry{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: tech,
			URL:          p.URL,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		})
	}
	for _, cert := range ch.Certifications {
		out.Certifications = append(out.Certifications, CertificationEntry{
			ID:            cert.ID,
			Name:          cert.Name,
			Issuer:        cert.Issuer,
			IssueDate:     cert.IssueDate,
			ExpiryDate:    cert.ExpiryDate,
			CredentialID:  cert.CredentialID,
			CredentialURL: cert.CredentialURL,
		})
	}
	return out
}
