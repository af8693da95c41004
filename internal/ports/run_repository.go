package ports

import (
	"context"
	"errors"
	"pig-logistics-sim/internal/domain"
)

var ErrRunNotFound = errors.New("run not found")

// Port: a boundary for storing finished simulation runs.
type RunRepository interface {
	// Persist a run and its activity rows in one transaction.
	SaveRun(ctx context.Context, run *domain.RunRecord) error

	// Return a run with its rows, or ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*domain.RunRecord, error)

	// List runs newest first, without rows or document.
	ListRuns(ctx context.Context) ([]*domain.RunRecord, error)
}
