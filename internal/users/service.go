package users

import (
	"context"
	"errors"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SignupInput is the registration payload.
type SignupInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// Service encapsulates user-related business logic
type Service struct {
	repo   UserRepository
	hasher PasswordHasher
}

func NewService(r UserRepository, h PasswordHasher) *Service {
	return &Service{repo: r, hasher: h}
}

// Signup validates and stores a new user. The plaintext password is replaced
// by its hash before the record reaches the repository.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	u := &models.User{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
		Password:  in.Password,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, passwordTooLong()
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login returns the user for email when password matches. It returns
// models.ErrNotFound for an unknown email and ErrInvalidCredentials on mismatch.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ok, err := s.hasher.Compare(u.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Profile loads the user identified by a token subject.
func (s *Service) Profile(ctx context.Context, id string) (*models.User, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.User, int64, error) {
	list, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, count, nil
}

// Lookup resolves user references in bulk, keyed by id.
func (s *Service) Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		out[u.ID] = u
	}
	return out, nil
}
