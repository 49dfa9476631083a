package skills

// SkillResponse is the wire representation of a skill.
type SkillResponse struct {
	ID          string `json:"id"`
	Resume      string `json:"resume"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
	Category    string `json:"category"`
}

func toResponse(s Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Resume:      s.ResumeID,
		Name:        s.Name,
		Proficiency: s.Proficiency,
		Category:    s.Category,
	}
}
