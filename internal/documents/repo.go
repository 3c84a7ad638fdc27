package documents

import (
	"context"

	"resume-reviewer/internal/resume"
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, limit, offset int) ([]Document, error)
	// UpdateParsed replaces the parsed fields of an existing document.
	UpdateParsed(ctx context.Context, id string, parsed resume.Document) error
}
