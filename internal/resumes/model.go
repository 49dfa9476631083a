package resumes

import "time"

// Status is the review lifecycle of a resume.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Statuses lists the closed set of valid statuses in display order.
var Statuses = []Status{StatusPending, StatusReviewed, StatusAccepted, StatusRejected}

// Valid reports whether s is one of the closed status set.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus converts raw input to a Status, reporting whether it is valid.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}

// Resume is the aggregate root: one candidate's submitted document and metadata.
type Resume struct {
	ID               string
	FullName         string
	Email            string
	Phone            string
	Location         string
	LinkedInURL      string
	GitHubURL        string
	Summary          string
	FileKey          string // storage key; empty until a file is uploaded
	OriginalFilename string
	SizeBytes        int64
	Checksum         string
	AadharKey        string // storage key of the aadhar identity document
	PanKey           string // storage key of the pan identity document
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
