package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/trip-planner/internal/model"
)

// PhotoRepo provides CRUD over the 'photos' table.
type PhotoRepo struct{ DB *sql.DB }

func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{DB: db} }

// Create inserts a photo and returns the stored row. A foreign key failure
// (the activity is gone) surfaces as ErrNotFound.
func (r *PhotoRepo) Create(ctx context.Context, activityID uint64, photoData string, caption *string, uploadedBy string) (*model.Photo, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO photos (activity_id, photo_data, caption, uploaded_by) VALUES (?, ?, ?, ?)`,
		activityID, photoData, caption, uploadedBy)
	if err != nil {
		// 1452: cannot add child row, the referenced activity does not exist
		if strings.Contains(err.Error(), "1452") {
			return nil, ErrNotFound
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, uint64(id))
}

func (r *PhotoRepo) getByID(ctx context.Context, id uint64) (*model.Photo, error) {
	var (
		p       model.Photo
		caption sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, activity_id, photo_data, caption, uploaded_by, created_at FROM photos WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.ActivityID, &p.PhotoData, &caption, &p.UploadedBy, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if caption.Valid {
		v := caption.String
		p.Caption = &v
	}
	return &p, nil
}

// ListByActivity returns an activity's photos newest first.
func (r *PhotoRepo) ListByActivity(ctx context.Context, activityID uint64) ([]model.Photo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, activity_id, photo_data, caption, uploaded_by, created_at
		 FROM photos WHERE activity_id=?
		 ORDER BY created_at DESC, id DESC`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPhotos(rows)
}

// Gallery returns every photo joined with its activity's title and date,
// newest first. The id tiebreak keeps the order strict for photos created
// within the same second.
func (r *PhotoRepo) Gallery(ctx context.Context) ([]model.GalleryPhoto, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.activity_id, p.photo_data, p.caption, p.uploaded_by, p.created_at,
		        a.title, a.activity_date
		 FROM photos p
		 INNER JOIN activities a ON p.activity_id = a.id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.GalleryPhoto{}
	for rows.Next() {
		var (
			g       model.GalleryPhoto
			caption sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.ActivityID, &g.PhotoData, &caption, &g.UploadedBy,
			&g.CreatedAt, &g.ActivityTitle, &g.ActivityDate); err != nil {
			return nil, err
		}
		if caption.Valid {
			v := caption.String
			g.Caption = &v
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete removes a photo. ErrNotFound when the id does not exist.
func (r *PhotoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM photos WHERE id=?", id)
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

func collectPhotos(rows *sql.Rows) ([]model.Photo, error) {
	out := []model.Photo{}
	for rows.Next() {
		var (
			p       model.Photo
			caption sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ActivityID, &p.PhotoData, &caption, &p.UploadedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		if caption.Valid {
			v := caption.String
			p.Caption = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
