package models

// User is a user document. PasswordHash never leaves the server.
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"`
}
