package documents

import (
	"errors"
	"time"

	"resume-reviewer/internal/resume"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Document is an uploaded resume and its parsed content.
type Document struct {
	ID         string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	Parsed     resume.Document
	CreatedAt  time.Time
}
