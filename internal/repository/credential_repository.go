package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/trip-planner/internal/model"
)

// CredentialRepo reads the 'auth' table. The running system never writes
// it; rows are provisioned out-of-band by cmd/hashgen.
type CredentialRepo struct{ DB *sql.DB }

func NewCredentialRepo(db *sql.DB) *CredentialRepo { return &CredentialRepo{DB: db} }

// GetByUsername fetches the shared credential. ErrNotFound for an unknown
// username; callers must answer it exactly like a bad password.
func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (model.Credential, error) {
	username = strings.TrimSpace(username)
	var c model.Credential
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM auth WHERE username=? LIMIT 1",
		username).Scan(&c.ID, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Credential{}, ErrNotFound
	}
	return c, err
}
