package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAnswerLifecycle(t *testing.T) {
	api := newTestAPI(t)
	userID, token := api.signup("helper@example.com")

	a := api.createAnswer(token, "use a buffered channel", userID)
	assert.Equal(t, userID, a.User)

	w := api.do(http.MethodGet, "/answers/"+a.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "use a buffered channel", decode[answerJSON](t, w).Text)

	w = api.do(http.MethodPut, "/answers/"+a.ID, token, gin.H{"text": "use a mutex"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[answerJSON](t, w)
	assert.Equal(t, "use a mutex", updated.Text)
	assert.Equal(t, userID, updated.User)

	w = api.do(http.MethodDelete, "/answers/"+a.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, a.ID, decode[answerJSON](t, w).ID)

	w = api.do(http.MethodGet, "/answers/"+a.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAnswer_TrustsBodyUser(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signup("helper@example.com")
	other := primitive.NewObjectID().Hex()

	a := api.createAnswer(token, "on behalf of someone", other)
	assert.Equal(t, other, a.User)

	w := api.do(http.MethodPost, "/answers", token, gin.H{"user": other})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnswerReferences_MustBeValidIDs(t *testing.T) {
	api := newTestAPI(t)
	userID, token := api.signup("helper@example.com")

	for _, bad := range []string{"", "0123456789", "not-an-object-id-at-all!"} {
		w := api.do(http.MethodPost, "/answers", token, gin.H{"text": "t", "user": bad})
		require.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Equal(t, "must be a valid id", decode[errorBody](t, w).Details["user"])
	}

	w := api.do(http.MethodGet, "/answers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[Page[answerJSON]](t, w).Count)

	a := api.createAnswer(token, "kept", userID)
	w = api.do(http.MethodPut, "/answers/"+a.ID, token, gin.H{"user": "0123456789"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/answers/"+a.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, decode[answerJSON](t, w).User)
}

func TestListAnswers_ExpandsUser(t *testing.T) {
	api := newTestAPI(t)
	userID, token := api.signup("helper@example.com")
	api.createAnswer(token, "one", userID)
	api.createAnswer(token, "two", primitive.NewObjectID().Hex())

	w := api.do(http.MethodGet, "/answers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[Page[map[string]interface{}]](t, w)
	assert.EqualValues(t, 2, page.Count)
	require.Len(t, page.Data, 2)

	assert.Equal(t, "one", page.Data[0]["text"])
	assert.Equal(t, userID, page.Data[0]["user"].(map[string]interface{})["_id"])
	assert.Nil(t, page.Data[1]["user"])
}

func TestAnswerMutations_RequireToken(t *testing.T) {
	api := newTestAPI(t)
	userID, token := api.signup("helper@example.com")
	a := api.createAnswer(token, "stay", userID)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/answers", "", gin.H{"text": "x", "user": userID}).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPut, "/answers/"+a.ID, "", gin.H{"text": "x"}).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodDelete, "/answers/"+a.ID, "", nil).Code)

	n, err := api.answers.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	oid, _ := primitive.ObjectIDFromHex(a.ID)
	stored, err := api.answers.Get(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "stay", stored.Text)
}
