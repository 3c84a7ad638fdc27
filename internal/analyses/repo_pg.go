package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The full report lives in a JSONB
// column; scores are duplicated into plain columns for listing.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a report.
func (r *PGRepo) Create(ctx context.Context, report Report) error {
	const query = `
INSERT INTO analyses (
	id, document_id, target_role, job_description_used, overall_score, match_percentage, report, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	payload, err := marshalJSONB(report)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		report.ID,
		nullableString(report.DocumentID),
		report.TargetRole.Role,
		report.TargetRole.DescriptionUsed,
		report.ATS.OverallScore,
		report.SkillGap.MatchPercentage,
		payload,
		report.CreatedAt,
	)
	return err
}

// GetByID returns a report by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Report, error) {
	const query = `
SELECT id, document_id, report, created_at
FROM analyses
WHERE id = $1
LIMIT 1`

	var (
		report     Report
		id         string
		documentID sql.NullString
		payload    []byte
	)
	err := r.DB.QueryRowContext(ctx, query, analysisID).Scan(&id, &documentID, &payload, &report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}

	createdAt := report.CreatedAt
	if err := json.Unmarshal(payload, &report); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	report.ID = id
	report.DocumentID = documentID.String
	report.CreatedAt = createdAt
	return report, nil
}

// List returns summaries ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, document_id, target_role, overall_score, match_percentage, created_at
FROM analyses
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0, limit)
	for rows.Next() {
		var s Summary
		var documentID sql.NullString
		if err := rows.Scan(&s.ID, &documentID, &s.TargetRole, &s.OverallScore, &s.MatchPercentage, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.DocumentID = documentID.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
