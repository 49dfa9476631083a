package projects

// ProjectResponse is the outward-facing representation of a project.
type ProjectResponse struct {
	ID           string   `json:"id"`
	Resume       string   `json:"resume"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
}

func toResponse(p Project) ProjectResponse {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	return ProjectResponse{
		ID:           p.ID,
		Resume:       p.ResumeID,
		Name:         p.Name,
		Description:  p.Description,
		Technologies: tech,
		URL:          p.URL,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
	}
}
