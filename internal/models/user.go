package models

// Role values accepted by the backend's UserModels endpoint.
const (
	RoleStudent    = "Student"
	RoleInstructor = "Instructor"
)

// UserRegistration is the JSON body for POST /api/UserModels.
// PasswordHash is opaque credential material; it is sent as entered.
type UserRegistration struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash"`
}

// User is a user record as returned by the backend.
type User struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Credentials is the JSON body for POST /api/UserModels/login.
type Credentials struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// ValidRole reports whether role is one the backend accepts.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor
}
