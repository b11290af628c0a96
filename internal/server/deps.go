package server

import (
	"context"
	"fmt"

	"github.com/qaforum/qaforum/backend/api/handlers"
	"github.com/qaforum/qaforum/backend/api/internal/answers"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/internal/database"
	"github.com/qaforum/qaforum/backend/api/internal/questions"
	"github.com/qaforum/qaforum/backend/api/internal/tokens"
	"github.com/qaforum/qaforum/backend/api/internal/users"
	"go.mongodb.org/mongo-driver/mongo"
)

func buildDeps(cfg *config.Config, q questions.Repository, a answers.Repository, u users.UserRepository) handlers.Deps {
	usersSvc := users.NewService(u, users.NewBcryptHasher())
	answersSvc := answers.NewService(a, usersSvc)
	return handlers.Deps{
		Config:    cfg,
		Questions: questions.NewService(q, answersSvc, usersSvc),
		Answers:   answersSvc,
		Users:     usersSvc,
		Verifier:  tokens.NewVerifier(cfg),
	}
}

// MemoryDeps wires every service to in-memory repositories.
func MemoryDeps(cfg *config.Config) handlers.Deps {
	return buildDeps(cfg, questions.NewMemoryRepository(), answers.NewMemoryRepository(), users.NewMemoryUserRepository())
}

// MongoDeps wires every service to collections of db and creates the indexes
// the repositories rely on.
func MongoDeps(ctx context.Context, cfg *config.Config, db *mongo.Database) (handlers.Deps, error) {
	qRepo := questions.NewMongoRepository(db.Collection(database.QuestionsCollection))
	uRepo := users.NewMongoUserRepository(db.Collection(database.UsersCollection))
	if err := qRepo.EnsureIndexes(ctx); err != nil {
		return handlers.Deps{}, fmt.Errorf("question indexes: %w", err)
	}
	if err := uRepo.EnsureIndexes(ctx); err != nil {
		return handlers.Deps{}, fmt.Errorf("user indexes: %w", err)
	}
	aRepo := answers.NewMongoRepository(db.Collection(database.AnswersCollection))
	return buildDeps(cfg, qRepo, aRepo, uRepo), nil
}
