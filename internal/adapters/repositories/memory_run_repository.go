package repositories

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"pig-logistics-sim/internal/domain"
	"pig-logistics-sim/internal/ports"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryRunRepository keeps runs in process memory. Used when no database
// is configured and in tests.
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[string]*domain.RunRecord
}

func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{runs: make(map[string]*domain.RunRecord)}
}

func (m *MemoryRunRepository) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	if run == nil || strings.TrimSpace(run.ID) == "" {
		return errors.New("save run: run id must not be empty")
	}

	cp := *run
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	cp.Rows = slices.Clone(run.Rows)
	cp.Document = slices.Clone(run.Document)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[cp.ID] = &cp
	return nil
}

func (m *MemoryRunRepository) GetRun(ctx context.Context, id string) (*domain.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("get run id=%s: %w", id, ports.ErrRunNotFound)
	}
	cp := *run
	return &cp, nil
}

func (m *MemoryRunRepository) ListRuns(ctx context.Context) ([]*domain.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*domain.RunRecord, 0, len(m.runs))
	for _, r := range m.runs {
		cp := *r
		cp.Rows = nil
		cp.Document = nil
		runs = append(runs, &cp)
	}

	slices.SortFunc(runs, func(a, b *domain.RunRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return runs, nil
}
