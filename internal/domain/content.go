package domain

import "time"

// ContentStatus is the processing state of a video content record.
type ContentStatus string

const (
	ContentStatusProcessing ContentStatus = "processing"
	ContentStatusFinished   ContentStatus = "finished"
	ContentStatusError      ContentStatus = "error"
)

// Content is a video record tracked against the external encoding service.
type Content struct {
	ID        string
	Title     string
	VideoID   string
	Status    ContentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusFromEncoderCode maps the encoder's numeric status to an internal
// status. Only 4 (finished) and 5 (error) are meaningful; everything else is
// acknowledged and ignored.
func StatusFromEncoderCode(code int) (ContentStatus, bool) {
	switch code {
	case 4:
		return ContentStatusFinished, true
	case 5:
		return ContentStatusError, true
	default:
		return "", false
	}
}
