package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/trip-planner/internal/model"
)

// ActivityRepo provides CRUD and the completion toggle over the
// 'activities' table.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// ActivityInput carries the writable fields of an activity. ActivityDate is
// the "YYYY-MM-DD" string from the client; ActivityTime is already
// normalized to "HH:MM:SS" or nil.
type ActivityInput struct {
	Title        string
	Location     *string
	ActivityDate string
	ActivityTime *string
}

const activityCols = "id, title, location, activity_date, activity_time, completed, completed_by, completed_at, created_by, created_at, updated_at"

func scanActivity(row *sql.Row) (*model.Activity, error) {
	var (
		a           model.Activity
		location    sql.NullString
		activityT   sql.NullString
		completedBy sql.NullString
		completedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Title, &location, &a.ActivityDate, &activityT,
		&a.Completed, &completedBy, &completedAt, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if location.Valid {
		v := location.String
		a.Location = &v
	}
	if activityT.Valid {
		v := activityT.String
		a.ActivityTime = &v
	}
	if completedBy.Valid {
		v := completedBy.String
		a.CompletedBy = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		a.CompletedAt = &v
	}
	return &a, nil
}

// List returns every activity with precomputed photo and comment counts,
// ordered by date then time of day. Untimed activities sort before timed
// ones on the same date (activity_time IS NOT NULL is 0 for NULL rows).
func (r *ActivityRepo) List(ctx context.Context) ([]model.ActivitySummary, error) {
	const q = `SELECT a.id, a.title, a.location, a.activity_date, a.activity_time,
	                  a.completed, a.completed_by, a.completed_at,
	                  a.created_by, a.created_at, a.updated_at,
	                  COALESCE(p.photo_count, 0), COALESCE(c.comment_count, 0)
	           FROM activities a
	           LEFT JOIN (SELECT activity_id, COUNT(*) AS photo_count
	                      FROM photos GROUP BY activity_id) p ON a.id = p.activity_id
	           LEFT JOIN (SELECT activity_id, COUNT(*) AS comment_count
	                      FROM comments GROUP BY activity_id) c ON a.id = c.activity_id
	           ORDER BY a.activity_date, a.activity_time IS NOT NULL, a.activity_time`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ActivitySummary{}
	for rows.Next() {
		var (
			s           model.ActivitySummary
			location    sql.NullString
			activityT   sql.NullString
			completedBy sql.NullString
			completedAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Title, &location, &s.ActivityDate, &activityT,
			&s.Completed, &completedBy, &completedAt,
			&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
			&s.PhotoCount, &s.CommentCount); err != nil {
			return nil, err
		}
		if location.Valid {
			v := location.String
			s.Location = &v
		}
		if activityT.Valid {
			v := activityT.String
			s.ActivityTime = &v
		}
		if completedBy.Valid {
			v := completedBy.String
			s.CompletedBy = &v
		}
		if completedAt.Valid {
			v := completedAt.Time
			s.CompletedAt = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a single activity.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (*model.Activity, error) {
	return scanActivity(r.DB.QueryRowContext(ctx,
		"SELECT "+activityCols+" FROM activities WHERE id=? LIMIT 1", id))
}

// Create inserts an activity and returns the stored row.
func (r *ActivityRepo) Create(ctx context.Context, in ActivityInput, createdBy string) (*model.Activity, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO activities (title, location, activity_date, activity_time, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		in.Title, in.Location, in.ActivityDate, in.ActivityTime, createdBy)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces the writable fields and refreshes updated_at.
func (r *ActivityRepo) Update(ctx context.Context, id uint64, in ActivityInput) (*model.Activity, error) {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE activities
		 SET title = ?, location = ?, activity_date = ?, activity_time = ?, updated_at = UTC_TIMESTAMP()
		 WHERE id = ?`,
		in.Title, in.Location, in.ActivityDate, in.ActivityTime, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ToggleComplete flips the completed flag and keeps completed_by and
// completed_at consistent with it in one statement, so two concurrent
// toggles can never interleave a read-then-write and strand the pair.
// MySQL applies SET clauses left to right, so both IF() expressions see
// the pre-flip value of completed.
func (r *ActivityRepo) ToggleComplete(ctx context.Context, id uint64, nickname string) (*model.Activity, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE activities
		 SET completed_by = IF(completed, NULL, ?),
		     completed_at = IF(completed, NULL, UTC_TIMESTAMP()),
		     completed    = NOT completed,
		     updated_at   = UTC_TIMESTAMP()
		 WHERE id = ?`,
		nickname, id)
	if err != nil {
		return nil, err
	}
	// completed always flips, so zero affected rows means the id is gone.
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes an activity and, in the same transaction, its photos and
// comments. Cascading here rather than orphaning keeps the inline photo
// blobs from outliving the activity they belong to.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE activity_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM photos WHERE activity_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM activities WHERE id=?", id)
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
	return tx.Commit()
}
