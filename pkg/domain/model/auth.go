package model

// AuthUser is the caller resolved from a bearer token
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}
