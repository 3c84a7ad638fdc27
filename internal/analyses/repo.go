package analyses

import "context"

// Repo defines persistence operations for reports.
type Repo interface {
	Create(ctx context.Context, report Report) error
	GetByID(ctx context.Context, analysisID string) (Report, error)
	List(ctx context.Context, limit, offset int) ([]Summary, error)
}
