package answers

import (
	"context"
	"sync"
	"time"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by tests and the dev server.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]*models.Answer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*models.Answer)}
}

func (m *MemoryRepository) Create(ctx context.Context, a *models.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.store[a.ID] = a.Clone()
	m.order = append(m.order, a.ID)
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.store[id]; ok {
		return a.Clone(), nil
	}
	return nil, models.ErrNotFound
}

func (m *MemoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := []*models.Answer{}
	for _, id := range ids {
		if a, ok := m.store[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (m *MemoryRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Answer{}
	for i := opts.Skip; i < int64(len(m.order)) && int64(len(out)) < opts.Limit; i++ {
		out = append(out, m.store[m.order[i]].Clone())
	}
	return out, nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}

func (m *MemoryRepository) Replace(ctx context.Context, a *models.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; !ok {
		return models.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	a.Version++
	m.store[a.ID] = a.Clone()
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
