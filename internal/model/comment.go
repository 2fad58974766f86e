package model

import "time"

// Comment is a chat-style message attached to an activity. The author is
// whatever nickname the writer logged in with.
type Comment struct {
	ID          uint64    `json:"id"`
	ActivityID  uint64    `json:"activity_id"`
	CommentText string    `json:"comment_text"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}
