package model

import "time"

// Credential mirrors the 'auth' table: the single shared login. Rows are
// provisioned out-of-band by cmd/hashgen and never written by the server.
type Credential struct {
	ID           uint64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// SessionEvent mirrors the 'user_sessions' table: an append-only record of
// who (by chosen nickname) logged in and when. Informational only, never
// consulted for authorization.
type SessionEvent struct {
	ID        uint64    `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}
