package ports

import (
	"context"
	"pig-logistics-sim/internal/domain"
)

// Contract for building the initial slaughterhouse, farms and batches of a run.
type EnvironmentSource interface {
	Load(ctx context.Context) (*domain.Environment, error)
}
