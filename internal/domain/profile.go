package domain

// MentorProfile is the directory-facing view of a mentor: account fields
// joined with the mentor-only attributes. Skills keep their listed order;
// the first entry is the primary skill used for skill ordering.
type MentorProfile struct {
	UserID          string
	Name            string
	Email           string
	Bio             string
	ImageRef        string
	Skills          []string
	ExperienceYears int
	Rating          *float64
}

// MenteeProfile holds the mentee-only attributes.
type MenteeProfile struct {
	UserID    string
	Interests string
	Goals     string
}
