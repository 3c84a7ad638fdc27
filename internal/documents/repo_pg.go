package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-reviewer/internal/resume"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, file_name, mime_type, size_bytes, storage_key, raw_text, sections, contact, created_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    raw_text,
    sections,
    contact,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	sections, err := json.Marshal(doc.Parsed.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	contact, err := json.Marshal(doc.Parsed.Contact)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.Parsed.RawText,
		sections,
		contact,
		doc.CreatedAt,
	)
	return err
}

// UpdateParsed rewrites raw_text, sections and contact for one document.
func (r *PGRepo) UpdateParsed(ctx context.Context, id string, parsed resume.Document) error {
	const query = `UPDATE documents SET raw_text = $2, sections = $3, contact = $4 WHERE id = $1`

	sections, err := json.Marshal(parsed.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	contact, err := json.Marshal(parsed.Contact)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, id, parsed.RawText, sections, contact)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents WHERE id = $1 LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

// List lists documents ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + ` FROM documents ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0, limit)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var sections, contact []byte
	if err := row.Scan(
		&doc.ID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&doc.Parsed.RawText,
		&sections,
		&contact,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}

	doc.Parsed.Sections = resume.NewSections()
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &doc.Parsed.Sections); err != nil {
			return Document{}, fmt.Errorf("decode sections: %w", err)
		}
	}
	doc.Parsed.Contact = resume.Contact{Links: []string{}}
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &doc.Parsed.Contact); err != nil {
			return Document{}, fmt.Errorf("decode contact: %w", err)
		}
		if doc.Parsed.Contact.Links == nil {
			doc.Parsed.Contact.Links = []string{}
		}
	}
	return doc, nil
}
