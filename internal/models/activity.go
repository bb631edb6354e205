package models

import "time"

// DefaultActivityLimit is the number of entries returned by the activity log.
const DefaultActivityLimit = 100

// ActivityEntry is one row of the append-only activity log.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    *int64    `json:"userId"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}
