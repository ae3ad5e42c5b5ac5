package models

import "time"

// Auth providers recorded on a user profile.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// User represents a user profile stored under users/{uid} in the Realtime
// Database. The Firebase Auth UID doubles as the node key.
type User struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	EmailVerified bool      `json:"emailVerified"`
	Provider      string    `json:"provider"`
	PhotoURL      string    `json:"photoURL,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
