package questions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by tests and the dev server.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*entry
	seq   int
}

type entry struct {
	q   *models.Question
	seq int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*entry)}
}

func (m *MemoryRepository) Create(ctx context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = time.Now().UTC()
	q.UpdatedAt = q.CreatedAt
	q.Normalize()
	m.seq++
	m.store[q.ID] = &entry{q: q.Clone(), seq: m.seq}
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.store[id]; ok {
		return e.q.Clone(), nil
	}
	return nil, models.ErrNotFound
}

func (m *MemoryRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*entry, 0, len(m.store))
	for _, e := range m.store {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].q.CreatedAt.Equal(all[j].q.CreatedAt) {
			return all[i].q.CreatedAt.After(all[j].q.CreatedAt)
		}
		return all[i].seq > all[j].seq
	})
	out := []*models.Question{}
	for i := opts.Skip; i < int64(len(all)) && int64(len(out)) < opts.Limit; i++ {
		out = append(out, all[i].q.Clone())
	}
	return out, nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}

func (m *MemoryRepository) Replace(ctx context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[q.ID]
	if !ok {
		return models.ErrNotFound
	}
	q.UpdatedAt = time.Now().UTC()
	q.Version++
	q.Normalize()
	e.q = q.Clone()
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepository) PushAnswer(ctx context.Context, id, answerID primitive.ObjectID) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	e.q.Answers = append(e.q.Answers, answerID)
	e.q.UpdatedAt = time.Now().UTC()
	e.q.Version++
	return e.q.Clone(), nil
}
