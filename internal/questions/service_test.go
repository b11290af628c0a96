package questions

import (
	"context"
	"sync"
	"testing"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers map[primitive.ObjectID]*models.User

func (f fakeUsers) Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := map[primitive.ObjectID]*models.User{}
	for _, id := range ids {
		if u, ok := f[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeAnswers map[primitive.ObjectID]*models.PopulatedAnswer

func (f fakeAnswers) LookupPopulated(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.PopulatedAnswer, error) {
	out := map[primitive.ObjectID]*models.PopulatedAnswer{}
	for _, id := range ids {
		if a, ok := f[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository(), fakeAnswers{}, fakeUsers{})
	ctx := context.Background()
	owner := primitive.NewObjectID()

	q, err := svc.Create(ctx, owner, "why?")
	require.NoError(t, err)
	assert.False(t, q.ID.IsZero())
	assert.Empty(t, q.Answers)

	got, err := svc.Get(ctx, q.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, owner, got.User)
	assert.Equal(t, "why?", got.Text)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.Get(ctx, "xyz")
	assert.ErrorIs(t, err, models.ErrInvalidID)

	_, err = svc.Create(ctx, owner, "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestList_NewestFirstPopulated(t *testing.T) {
	owner := &models.User{ID: primitive.NewObjectID(), Email: "o@example.com"}
	answer := &models.PopulatedAnswer{ID: primitive.NewObjectID(), Text: "because", User: owner}
	svc := NewService(NewMemoryRepository(), fakeAnswers{answer.ID: answer}, fakeUsers{owner.ID: owner})
	ctx := context.Background()

	older, err := svc.Create(ctx, owner.ID, "older")
	require.NoError(t, err)
	_, err = svc.AddAnswer(ctx, older.ID, answer.ID)
	require.NoError(t, err)
	_, err = svc.AddAnswer(ctx, older.ID, primitive.NewObjectID())
	require.NoError(t, err)
	_, err = svc.Create(ctx, primitive.NewObjectID(), "orphan")
	require.NoError(t, err)

	list, count, err := svc.List(ctx, models.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, list, 2)

	assert.Equal(t, "orphan", list[0].Text)
	assert.Nil(t, list[0].User)
	assert.Empty(t, list[0].Answers)

	assert.Equal(t, "older", list[1].Text)
	assert.Equal(t, owner, list[1].User)
	require.Len(t, list[1].Answers, 1)
	assert.Equal(t, owner, list[1].Answers[0].User)

	page, count, err := svc.List(ctx, models.ListOptions{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, page, 1)
	assert.Equal(t, "older", page[0].Text)
}

func TestUpdate_DoesNotTouchOriginalOnValidationFailure(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, fakeAnswers{}, fakeUsers{})
	ctx := context.Background()
	q, err := svc.Create(ctx, primitive.NewObjectID(), "keep")
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, q, models.QuestionPatch{Text: &empty})
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, "keep", q.Text)

	stored, err := repo.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", stored.Text)
	assert.Zero(t, stored.Version)
}

func TestDelete(t *testing.T) {
	svc := NewService(NewMemoryRepository(), fakeAnswers{}, fakeUsers{})
	ctx := context.Background()
	q, err := svc.Create(ctx, primitive.NewObjectID(), "bye")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, q))
	_, err = svc.Get(ctx, q.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, q), models.ErrNotFound)
}

func TestAddAnswer_ConcurrentPushesAreAllKept(t *testing.T) {
	svc := NewService(NewMemoryRepository(), fakeAnswers{}, fakeUsers{})
	ctx := context.Background()
	q, err := svc.Create(ctx, primitive.NewObjectID(), "popular")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddAnswer(ctx, q.ID, primitive.NewObjectID())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, q.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, got.Answers, n)
	assert.Equal(t, n, got.Version)

	_, err = svc.AddAnswer(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
