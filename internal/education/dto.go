package education

// EducationResponse is the wire representation of an education entry.
type EducationResponse struct {
	ID          string `json:"id"`
	Resume      string `json:"resume"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

func toResponse(edu Education) EducationResponse {
	return EducationResponse{
		ID:          edu.ID,
		Resume:      edu.ResumeID,
		Institution: edu.Institution,
		Degree:      edu.Degree,
		StartDate:   edu.StartDate,
		EndDate:     edu.EndDate,
		GPA:         edu.GPA,
		Description: edu.Description,
	}
}
