package repository

import (
	"context"
	"database/sql"
)

// SessionRepo appends to the 'user_sessions' login log. The log is
// append-only and purely informational; nothing reads it back for
// authorization decisions.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Append records a successful login under the chosen nickname.
func (r *SessionRepo) Append(ctx context.Context, nickname string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_sessions (nickname) VALUES (?)", nickname)
	return err
}
