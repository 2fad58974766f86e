package model

import "time"

// Photo belongs to exactly one activity. The image itself is stored inline
// as base64 text, which is fine at this system's scale.
type Photo struct {
	ID         uint64    `json:"id"`
	ActivityID uint64    `json:"activity_id"`
	PhotoData  string    `json:"photo_data"`
	Caption    *string   `json:"caption"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// GalleryPhoto is a gallery row: the photo joined with its activity's
// title and date.
type GalleryPhoto struct {
	Photo
	ActivityTitle string    `json:"activity_title"`
	ActivityDate  time.Time `json:"activity_date"`
}
