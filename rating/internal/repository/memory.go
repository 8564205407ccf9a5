package repository

import (
	"context"
	"sync"

	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
)

// Memory is an in-process Repository. It stands in for the database in tests
// and when the service runs with DATABASE_URL=memory://.
type Memory struct {
	mu     sync.RWMutex
	lastID int
	items  []model.Rating
}

var _ Repository = (*Memory)(nil)

func NewMemory(seed ...model.CreateRating) *Memory {
	m := &Memory{}
	for _, req := range seed {
		m.insert(req)
	}
	return m
}

// Fixtures are the canned ratings served by a seeded memory store.
func Fixtures() []model.CreateRating {
	return []model.CreateRating{
		{Plate: "AAA-1111", Score: 1, Comment: "really bad driver"},
		{Plate: "AAA-1111", Score: 5, Comment: "Fine driver. No problems."},
	}
}

func (m *Memory) CreateRating(ctx context.Context, req model.CreateRating) (model.Rating, error) {
	if err := ctx.Err(); err != nil {
		return model.Rating{}, &errs.StorageError{Op: "create rating", Err: err}
	}
	return m.insert(req), nil
}

func (m *Memory) ListByPlate(ctx context.Context, plate string) ([]model.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, &errs.StorageError{Op: "list ratings by plate", Err: err}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]model.Rating, 0)
	for _, r := range m.items {
		if r.Plate == plate {
			items = append(items, r)
		}
	}
	return items, nil
}

func (m *Memory) ListAll(ctx context.Context) ([]model.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, &errs.StorageError{Op: "list ratings", Err: err}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]model.Rating, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) insert(req model.CreateRating) model.Rating {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	r := model.Rating{ID: m.lastID, Plate: req.Plate, Score: req.Score, Comment: req.Comment}
	m.items = append(m.items, r)
	return r
}
