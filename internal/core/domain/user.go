package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const DefaultTheme = "light"

// Profile holds the user-editable display settings.
type Profile struct {
	Name  string `json:"name"`
	Theme string `json:"theme"`
}

// User models an authenticated actor in the system. PasswordHash is persisted
// with the document but never leaves the service layer.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash"`
	Role         string     `json:"role"`
	Profile      Profile    `json:"profile"`
	LastLogin    *time.Time `json:"lastLogin"`
}
