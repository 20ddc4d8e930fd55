package model

// User represents a marketplace member.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Year       string `json:"year,omitempty"`
	Department string `json:"department,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	CollegeID  string `json:"college_id,omitempty"`
}

// UserInput is the payload for creating a user.
type UserInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Year       string `json:"year,omitempty"`
	Department string `json:"department,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// UserPatch is a partial profile update.
type UserPatch struct {
	Name       *string `json:"name,omitempty"`
	Year       *string `json:"year,omitempty"`
	Department *string `json:"department,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}
