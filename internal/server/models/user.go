// Package models holds the server-side domain entities.
package models

import "time"

// User is the durable credential record. PasswordHash never leaves the
// server process: handlers build outward views without it.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
