package domain

import "errors"

// ErrImageNotFound is an error thrown when an image record is not found
var ErrImageNotFound = errors.New("image not found")

// ErrInvalidFileType is an error thrown when file type is invalid
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrNoFile is an error thrown when no file was provided with an upload
var ErrNoFile = errors.New("no file provided")

// ErrInvalidTransition is an error thrown when a status transition is not
// allowed by the image lifecycle
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrMalformedMessage is an error thrown when a queue payload does not parse
// into a known message schema; consumers ack and drop such messages
var ErrMalformedMessage = errors.New("malformed message")

// ErrNotConnected is an error thrown when a queue operation is attempted
// before the broker connection is established or after it was closed
var ErrNotConnected = errors.New("not connected to broker")
