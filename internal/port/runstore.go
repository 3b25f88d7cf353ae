package port

import "tmxmine/internal/domain"

// RunStore persists extraction run records across invocations.
type RunStore interface {
	PutRun(rec domain.RunRecord) error

	ListRuns() ([]domain.RunRecord, error)

	Close() error
}
