package dto

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	ID       uint64 `json:"id"`
	Token    string `json:"token"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ProfileDTO is the caller's own identity plus their latest photo, if any.
type ProfileDTO struct {
	ID              uint64  `json:"id"`
	FullName        string  `json:"fullName"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	ProfilePhotoURL *string `json:"profilePhotoUrl"`
}
