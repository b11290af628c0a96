package answers

import (
	"context"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLookup resolves user references in bulk.
type UserLookup interface {
	Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
}

// Service encapsulates answer business logic
type Service struct {
	repo  Repository
	users UserLookup
}

func NewService(r Repository, users UserLookup) *Service {
	return &Service{repo: r, users: users}
}

// List returns one page of answers with their owners expanded, plus the total
// number of answers.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.PopulatedAnswer, int64, error) {
	page, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.populate(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

// LookupPopulated loads the answers in ids with their owners expanded. Unknown
// ids are absent from the result.
func (s *Service) LookupPopulated(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.PopulatedAnswer, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	populated, err := s.populate(ctx, found)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.PopulatedAnswer, len(populated))
	for _, a := range populated {
		out[a.ID] = a
	}
	return out, nil
}

func (s *Service) populate(ctx context.Context, list []*models.Answer) ([]*models.PopulatedAnswer, error) {
	var userIDs []primitive.ObjectID
	for _, a := range list {
		if a.User != nil {
			userIDs = append(userIDs, *a.User)
		}
	}
	users, err := s.users.Lookup(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make([]*models.PopulatedAnswer, 0, len(list))
	for _, a := range list {
		out = append(out, models.PopulateAnswer(a, users))
	}
	return out, nil
}

// Create stores an answer for the given user. The user reference comes from
// the caller as-is and is not checked against the authenticated identity.
func (s *Service) Create(ctx context.Context, text string, user *primitive.ObjectID) (*models.Answer, error) {
	a := &models.Answer{Text: text, User: user}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get loads an answer by its hex identifier.
func (s *Service) Get(ctx context.Context, id string) (*models.Answer, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// Update merges patch over a and persists the result. Ownership is not checked.
func (s *Service) Update(ctx context.Context, a *models.Answer, patch models.AnswerPatch) (*models.Answer, error) {
	updated := a.Clone()
	patch.Apply(updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a. Questions referencing it keep the dangling reference.
func (s *Service) Delete(ctx context.Context, a *models.Answer) error {
	return s.repo.Delete(ctx, a.ID)
}
