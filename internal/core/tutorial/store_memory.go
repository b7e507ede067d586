package tutorial

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/tutorials/internal/platform/dberr"
)

// MemoryRepository keeps tutorials in process memory.
//
// Ids come from a monotonically increasing counter and are never reused,
// matching the bigserial behaviour of the Postgres table.
type MemoryRepository struct {
	mu     sync.RWMutex
	rows   map[int64]Tutorial
	lastID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[int64]Tutorial)}
}

func (repository *MemoryRepository) List(_ context.Context, f Filter, limit, offset int) ([]*Tutorial, int64, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]*Tutorial, 0, len(repository.rows))
	for _, row := range repository.rows {
		t := row
		if f.Matches(&t) {
			matched = append(matched, &t)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*Tutorial{}, total, nil
	}

	end := len(matched)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (repository *MemoryRepository) Get(_ context.Context, id int64) (*Tutorial, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	row, found := repository.rows[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return &row, nil
}

func (repository *MemoryRepository) Create(_ context.Context, t *Tutorial) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.lastID++
	t.ID = repository.lastID
	repository.rows[t.ID] = *t
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, t *Tutorial) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.rows[t.ID]; !found {
		return dberr.ErrNotFound
	}
	repository.rows[t.ID] = *t
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.rows, id)
	return nil
}

func (repository *MemoryRepository) DeleteAll(_ context.Context) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clear(repository.rows)
	return nil
}
