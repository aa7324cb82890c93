package domain

import "time"

// ImageStatus represents the lifecycle state of an uploaded image.
type ImageStatus string

const (
	ImageStatusPending    ImageStatus = "pending"
	ImageStatusProcessing ImageStatus = "processing"
	ImageStatusCompleted  ImageStatus = "completed"
	ImageStatusFailed     ImageStatus = "failed"
)

// Terminal reports whether no further transition is defined from s.
func (s ImageStatus) Terminal() bool {
	return s == ImageStatusCompleted || s == ImageStatusFailed
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// The walk is one-way: pending -> processing -> completed|failed. Setting
// processing while already processing is allowed so redelivered jobs stay
// idempotent.
func (s ImageStatus) CanTransitionTo(next ImageStatus) bool {
	switch s {
	case ImageStatusPending:
		return next == ImageStatusProcessing
	case ImageStatusProcessing:
		return next == ImageStatusProcessing || next == ImageStatusCompleted || next == ImageStatusFailed
	default:
		return false
	}
}

// Image represents one uploaded image and its processing state.
// StoredFilename uniquely and permanently identifies the record; it is the
// join key carried by queue messages and by the download endpoints.
type Image struct {
	ID                  int64
	OriginalFilename    string
	StoredFilename      string
	FileSize            int64
	MimeType            string
	Status              ImageStatus
	ErrorMessage        string
	ThumbnailFilename   string
	ThumbnailSize       int64
	UploadedAt          time.Time
	ProcessingStartedAt *time.Time
	CompletedAt         *time.Time
}

// ThumbnailName derives the deterministic thumbnail filename for a stored
// filename, so the consuming side never needs to invent names.
func ThumbnailName(storedFilename string) string {
	return "thumb_" + storedFilename
}
