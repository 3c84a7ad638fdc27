package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-reviewer/internal/resume"
	"resume-reviewer/internal/shared/metrics"
	"resume-reviewer/internal/shared/storage/object"
	"resume-reviewer/internal/shared/telemetry"
	"resume-reviewer/internal/shared/util"
)

const (
	// MaxUploadSize caps accepted documents at 10MB.
	MaxUploadSize = 10 << 20

	uploadNamespace = "uploads"
)

// ErrTooLarge is returned when an upload exceeds MaxUploadSize.
var ErrTooLarge = errors.New("document exceeds upload limit")

// Service contains business logic for documents.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Parser *resume.Parser
}

// Upload parses the file, saves it to object storage and records the document.
// Parsing happens first so unreadable files are never stored.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return Document{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	_, sniffed, err := util.SniffContentType(bytes.NewReader(data))
	if err != nil {
		return Document{}, err
	}

	start := time.Now()
	parsed, err := s.Parser.ParseFile(ctx, data, sniffed, fileName)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Warn("documents.extraction_failed", map[string]any{
			"file_name": fileName,
			"mime_type": sniffed,
			"error":     err.Error(),
		})
		return Document{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, uploadNamespace, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc := Document{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		Parsed:     parsed,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(context.WithoutCancel(ctx), storageKey); delErr != nil {
			telemetry.Warn("documents.orphan_object", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return Document{}, fmt.Errorf("save document: %w", err)
	}

	metrics.IncDocumentsParsed()
	telemetry.Info("documents.parsed", map[string]any{
		"documentId":  doc.ID,
		"mime_type":   doc.MimeType,
		"size_bytes":  doc.SizeBytes,
		"raw_chars":   len(parsed.RawText),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return doc, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return Document{}, fmt.Errorf("%w: invalid document id", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, strings.TrimSpace(id))
}

// Reparse extracts the stored original again with the current parser and
// replaces the document's parsed fields.
func (s *Service) Reparse(ctx context.Context, id string) (Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}

	body, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, fmt.Errorf("open stored document key=%s: %w", doc.StorageKey, err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return Document{}, fmt.Errorf("read stored document key=%s: %w", doc.StorageKey, err)
	}

	start := time.Now()
	parsed, err := s.Parser.ParseFile(ctx, data, doc.MimeType, doc.FileName)
	if err != nil {
		metrics.IncExtractionFailed()
		return Document{}, err
	}
	if err := s.Repo.UpdateParsed(ctx, doc.ID, parsed); err != nil {
		return Document{}, fmt.Errorf("update document: %w", err)
	}

	doc.Parsed = parsed
	metrics.IncDocumentsParsed()
	telemetry.Info("documents.reparsed", map[string]any{
		"documentId":  doc.ID,
		"raw_chars":   len(parsed.RawText),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return doc, nil
}

// List returns recent documents.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Repo.List(ctx, limit, offset)
}
