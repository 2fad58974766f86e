package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/trip-planner/internal/model"
)

// CommentRepo provides CRUD over the 'comments' table.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment and returns the stored row. A foreign key
// failure surfaces as ErrNotFound.
func (r *CommentRepo) Create(ctx context.Context, activityID uint64, text, author string) (*model.Comment, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO comments (activity_id, comment_text, author) VALUES (?, ?, ?)`,
		activityID, text, author)
	if err != nil {
		if strings.Contains(err.Error(), "1452") {
			return nil, ErrNotFound
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var c model.Comment
	err = r.DB.QueryRowContext(ctx,
		"SELECT id, activity_id, comment_text, author, created_at FROM comments WHERE id=? LIMIT 1",
		uint64(id)).Scan(&c.ID, &c.ActivityID, &c.CommentText, &c.Author, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByActivity returns an activity's comments oldest first, a chat
// transcript rather than a feed.
func (r *CommentRepo) ListByActivity(ctx context.Context, activityID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, activity_id, comment_text, author, created_at
		 FROM comments WHERE activity_id=?
		 ORDER BY created_at ASC, id ASC`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.CommentText, &c.Author, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a comment. ErrNotFound when the id does not exist.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
