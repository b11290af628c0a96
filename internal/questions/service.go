package questions

import (
	"context"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLookup resolves user references in bulk.
type UserLookup interface {
	Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
}

// AnswerLookup resolves answer references in bulk, with their users expanded.
type AnswerLookup interface {
	LookupPopulated(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.PopulatedAnswer, error)
}

// Service encapsulates question business logic
type Service struct {
	repo    Repository
	answers AnswerLookup
	users   UserLookup
}

func NewService(r Repository, answers AnswerLookup, users UserLookup) *Service {
	return &Service{repo: r, answers: answers, users: users}
}

// List returns one page of questions, newest first, with owners and answers
// expanded two levels deep, plus the total number of questions.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.PopulatedQuestion, int64, error) {
	page, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var userIDs, answerIDs []primitive.ObjectID
	for _, q := range page {
		userIDs = append(userIDs, q.User)
		answerIDs = append(answerIDs, q.Answers...)
	}
	users, err := s.users.Lookup(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}
	answers, err := s.answers.LookupPopulated(ctx, answerIDs)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.PopulatedQuestion, 0, len(page))
	for _, q := range page {
		out = append(out, models.PopulateQuestion(q, users, answers))
	}
	return out, count, nil
}

// Create stores a new question owned by userID with an empty answer list.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, text string) (*models.Question, error) {
	q := &models.Question{Text: text, User: userID, Answers: []primitive.ObjectID{}}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Get loads a question by its hex identifier.
func (s *Service) Get(ctx context.Context, id string) (*models.Question, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// Update merges patch over q and persists the result. Ownership is not checked.
func (s *Service) Update(ctx context.Context, q *models.Question, patch models.QuestionPatch) (*models.Question, error) {
	updated := q.Clone()
	patch.Apply(updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes q. Ownership is not checked.
func (s *Service) Delete(ctx context.Context, q *models.Question) error {
	return s.repo.Delete(ctx, q.ID)
}

// AddAnswer appends answerID to the question's answer list. The answer is not
// required to exist and repeated calls append repeated entries.
func (s *Service) AddAnswer(ctx context.Context, id, answerID primitive.ObjectID) (*models.Question, error) {
	return s.repo.PushAnswer(ctx, id, answerID)
}
