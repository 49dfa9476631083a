package experiences

// ExperienceResponse is the outward-facing representation of an experience.
type ExperienceResponse struct {
	ID          string   `json:"id"`
	Resume      string   `json:"resume"`
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
	SkillsUsed  []string `json:"skills_used"`
}

func toResponse(exp Experience) ExperienceResponse {
	skills := exp.SkillsUsed
	if skills == nil {
		skills = []string{}
	}
	return ExperienceResponse{
		ID:          exp.ID,
		Resume:      exp.ResumeID,
		Company:     exp.Company,
		Title:       exp.Title,
		StartDate:   exp.StartDate,
		EndDate:     exp.EndDate,
		Description: exp.Description,
		SkillsUsed:  skills,
	}
}
