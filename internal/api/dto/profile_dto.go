package dto

// ProfileUpdateRequest carries optional profile fields; omitted fields are
// left unchanged. Role-specific fields are ignored for the other role.
type ProfileUpdateRequest struct {
	Name            *string  `json:"name"`
	Bio             *string  `json:"bio"`
	ImageRef        *string  `json:"imageRef"`
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experienceYears"`
	Interests       *string  `json:"interests"`
	Goals           *string  `json:"goals"`
}

// ProfileBody is the nested profile object of a user response.
type ProfileBody struct {
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	ImageRef        string   `json:"imageRef"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears *int     `json:"experienceYears,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Interests       *string  `json:"interests,omitempty"`
	Goals           *string  `json:"goals,omitempty"`
}

// UserResponse is the role-shaped account representation.
type UserResponse struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Role    string      `json:"role"`
	Profile ProfileBody `json:"profile"`
}
