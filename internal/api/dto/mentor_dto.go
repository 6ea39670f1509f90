package dto

// MentorProfileBody is the directory entry profile object.
type MentorProfileBody struct {
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	ImageRef        string   `json:"imageRef"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	Rating          *float64 `json:"rating,omitempty"`
}

// MentorResponse is a mentor directory entry.
type MentorResponse struct {
	ID      string            `json:"id"`
	Email   string            `json:"email"`
	Role    string            `json:"role"`
	Profile MentorProfileBody `json:"profile"`
}
