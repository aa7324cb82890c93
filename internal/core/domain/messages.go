package domain

import (
	"encoding/json"
	"fmt"
)

// ProcessingJob is the message published on the processing queue, one per
// upload. It is self-contained: the worker needs no extra lookup to locate
// the source file or name the thumbnail.
type ProcessingJob struct {
	ImageID           int64  `json:"imageId"`
	OriginalPath      string `json:"originalPath"`
	ThumbnailPath     string `json:"thumbnailPath"`
	StoredFilename    string `json:"storedFilename"`
	ThumbnailFilename string `json:"thumbnailFilename"`
}

// Validate checks required fields.
func (j ProcessingJob) Validate() error {
	if j.ImageID <= 0 {
		return fmt.Errorf("%w: missing imageId", ErrMalformedMessage)
	}
	if j.OriginalPath == "" || j.ThumbnailPath == "" {
		return fmt.Errorf("%w: missing paths", ErrMalformedMessage)
	}
	if j.StoredFilename == "" || j.ThumbnailFilename == "" {
		return fmt.Errorf("%w: missing filenames", ErrMalformedMessage)
	}
	return nil
}

// Encode marshals the job for publishing.
func (j ProcessingJob) Encode() ([]byte, error) {
	return json.Marshal(j)
}

// DecodeProcessingJob parses a processing queue payload. A payload that does
// not parse into a valid job is a poison message and is reported with
// ErrMalformedMessage so consumers can ack-and-drop it.
func DecodeProcessingJob(data []byte) (ProcessingJob, error) {
	var job ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return ProcessingJob{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := job.Validate(); err != nil {
		return ProcessingJob{}, err
	}
	return job, nil
}

// CompletionEvent is the message published on the completion queue, one per
// finished job attempt. On success ThumbnailFilename is set; on failure
// Failed is true and ErrorMessage explains what went wrong.
type CompletionEvent struct {
	ImageID           int64  `json:"imageId"`
	ThumbnailFilename string `json:"thumbnailFilename,omitempty"`
	Failed            bool   `json:"failed,omitempty"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
}

// Validate checks required fields.
func (e CompletionEvent) Validate() error {
	if e.ImageID <= 0 {
		return fmt.Errorf("%w: missing imageId", ErrMalformedMessage)
	}
	if !e.Failed && e.ThumbnailFilename == "" {
		return fmt.Errorf("%w: completion without thumbnail filename", ErrMalformedMessage)
	}
	return nil
}

// Encode marshals the event for publishing.
func (e CompletionEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeCompletionEvent parses a completion queue payload, applying the same
// poison-message policy as DecodeProcessingJob.
func DecodeCompletionEvent(data []byte) (CompletionEvent, error) {
	var event CompletionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return CompletionEvent{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := event.Validate(); err != nil {
		return CompletionEvent{}, err
	}
	return event, nil
}
