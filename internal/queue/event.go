// Package queue defines message payloads exchanged over the message broker
// and publishes them. Publishing is fire-and-forget: errors are logged and
// returned so callers can ignore failures without interrupting a request.
package queue

// ActivityCompletedEvent is published when an activity transitions to
// completed. It carries enough for downstream listeners (a group chat bot,
// analytics) to act without querying the primary database.
type ActivityCompletedEvent struct {
	ActivityID   uint64 `json:"activity_id"`
	Title        string `json:"title"`
	ActivityDate string `json:"activity_date"`
	CompletedBy  string `json:"completed_by"`
	CompletedAt  string `json:"completed_at"`
}
