package model

import "time"

// Activity is a planned shared event. The completion fields move together:
// completed_by and completed_at are non-null exactly when completed is true.
type Activity struct {
	ID           uint64     `json:"id"`
	Title        string     `json:"title"`
	Location     *string    `json:"location"`
	ActivityDate time.Time  `json:"activity_date"`
	ActivityTime *string    `json:"activity_time"`
	Completed    bool       `json:"completed"`
	CompletedBy  *string    `json:"completed_by"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ActivitySummary is a list-view row: the activity plus aggregated child
// counts, zero when the activity has no photos or comments.
type ActivitySummary struct {
	Activity
	PhotoCount   int `json:"photo_count"`
	CommentCount int `json:"comment_count"`
}

// ActivityDetail is the detail-view payload. Photos are a feed (newest
// first), comments a transcript (oldest first); the orderings differ on
// purpose.
type ActivityDetail struct {
	Activity
	Photos   []Photo   `json:"photos"`
	Comments []Comment `json:"comments"`
}

// NormalizeTime converts an "HH:MM" clock string to "HH:MM:SS" for the TIME
// column. An empty value becomes nil, never a sentinel. Strings already in
// seconds form pass through unchanged.
func NormalizeTime(s string) *string {
	if s == "" {
		return nil
	}
	if len(s) == 5 {
		s += ":00"
	}
	return &s
}
