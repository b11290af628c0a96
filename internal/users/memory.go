package users

import (
	"context"
	"sync"
	"time"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository is an in-memory UserRepository. It enforces the same
// unique-email constraint as the Mongo index.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{store: make(map[primitive.ObjectID]*models.User)}
}

func (m *MemoryUserRepository) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Email == u.Email {
			return models.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.store[u.ID] = u.Clone()
	m.order = append(m.order, u.ID)
	return nil
}

func (m *MemoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.store[id]; ok {
		return u.Clone(), nil
	}
	return nil, models.ErrNotFound
}

func (m *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryUserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.User{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if u, ok := m.store[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (m *MemoryUserRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.User{}
	for i := opts.Skip; i < int64(len(m.order)) && int64(len(out)) < opts.Limit; i++ {
		out = append(out, m.store[m.order[i]].Clone())
	}
	return out, nil
}

func (m *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}
