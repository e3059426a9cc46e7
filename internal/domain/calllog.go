package domain

import "time"

// CallLog records one call activity against an account. The most recent call
// per person drives staleness classification.
type CallLog struct {
	ID        string
	SurgeonID string
	LoggedBy  string
	CalledAt  time.Time
	Notes     string
}
