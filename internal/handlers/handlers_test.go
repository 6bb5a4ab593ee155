package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/Dias221467/Social_Network_API/internal/repository/memory"
	"github.com/Dias221467/Social_Network_API/internal/services"
	"github.com/Dias221467/Social_Network_API/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type brokenUsers struct{ *memory.UserRepository }

func (brokenUsers) GetAllUsers(context.Context) ([]models.User, error) {
	return nil, errors.New("connection refused")
}

func newRouter(users services.UserStore, thoughts services.ThoughtStore) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	RegisterRoutes(api,
		NewUserHandler(services.NewUserService(users, thoughts)),
		NewFriendHandler(services.NewFriendService(users)),
		NewThoughtHandler(services.NewThoughtService(thoughts, users)),
		NewReactionHandler(services.NewReactionService(thoughts)),
	)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	return router
}

func newTestRouter() *mux.Router {
	return newRouter(memory.NewUserRepository(), memory.NewThoughtRepository())
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type userJSON struct {
	ID       string   `json:"_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Thoughts []string `json:"thoughts"`
	Friends  []string `json:"friends"`
}

type populatedUserJSON struct {
	ID       string        `json:"_id"`
	Username string        `json:"username"`
	Thoughts []thoughtJSON `json:"thoughts"`
	Friends  []userJSON    `json:"friends"`
}

type reactionJSON struct {
	ReactionID   string `json:"reactionId"`
	ReactionBody string `json:"reactionBody"`
	Username     string `json:"username"`
}

type thoughtJSON struct {
	ID          string         `json:"_id"`
	ThoughtText string         `json:"thoughtText"`
	Username    string         `json:"username"`
	UserID      string         `json:"userId"`
	Reactions   []reactionJSON `json:"reactions"`
}

func createUser(t *testing.T, router http.Handler, name string) userJSON {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/users", `{"username":"`+name+`","email":"`+name+`@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var u userJSON
	decode(t, rec, &u)
	return u
}

func createThought(t *testing.T, router http.Handler, text, username, userID string) thoughtJSON {
	t.Helper()
	body := `{"thoughtText":"` + text + `","username":"` + username + `"`
	if userID != "" {
		body += `,"userId":"` + userID + `"`
	}
	body += `}`
	rec := do(t, router, http.MethodPost, "/api/thoughts", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var th thoughtJSON
	decode(t, rec, &th)
	return th
}

func TestCreateAndGetUser(t *testing.T) {
	router := newTestRouter()

	created := createUser(t, router, "lernantino")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{}, created.Thoughts)
	assert.Equal(t, []string{}, created.Friends)

	rec := do(t, router, http.MethodGet, "/api/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var got populatedUserJSON
	decode(t, rec, &got)
	assert.Equal(t, "lernantino", got.Username)
	assert.Empty(t, got.Thoughts)
	assert.Empty(t, got.Friends)
}

func TestMissingEntitiesReturn404(t *testing.T) {
	router := newTestRouter()
	missing := primitive.NewObjectID().Hex()

	cases := []struct {
		method, path, body, message string
	}{
		{http.MethodGet, "/api/users/" + missing, "", "User not found"},
		{http.MethodGet, "/api/users/not-an-id", "", "User not found"},
		{http.MethodPut, "/api/users/" + missing, `{"email":"x@example.com"}`, "User not found"},
		{http.MethodDelete, "/api/users/" + missing, "", "User not found"},
		{http.MethodPost, "/api/users/" + missing + "/friends/" + missing, "", "User not found"},
		{http.MethodDelete, "/api/users/" + missing + "/friends/" + missing, "", "User not found"},
		{http.MethodGet, "/api/thoughts/" + missing, "", "Thought not found"},
		{http.MethodPut, "/api/thoughts/" + missing, `{"thoughtText":"x"}`, "Thought not found"},
		{http.MethodDelete, "/api/thoughts/" + missing, "", "Thought not found"},
		{http.MethodPost, "/api/thoughts/" + missing + "/reactions", `{"reactionBody":"x","username":"y"}`, "Thought not found"},
		{http.MethodDelete, "/api/thoughts/" + missing + "/reactions/" + missing, "", "Thought not found"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusNotFound, rec.Code)

			var body map[string]interface{}
			decode(t, rec, &body)
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestStoreFailureReturns500WithoutRawError(t *testing.T) {
	router := newRouter(brokenUsers{memory.NewUserRepository()}, memory.NewThoughtRepository())

	rec := do(t, router, http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestMalformedBodyReturns500(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/api/users", `{"username":`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")
}

func TestUpdateUser(t *testing.T) {
	router := newTestRouter()
	u := createUser(t, router, "alice")

	rec := do(t, router, http.MethodPut, "/api/users/"+u.ID, `{"email":"alice@changed.example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got userJSON
	decode(t, rec, &got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@changed.example.com", got.Email)
}

func TestUpdateUserReplacesReferenceLists(t *testing.T) {
	router := newTestRouter()
	alice := createUser(t, router, "alice")
	bob := createUser(t, router, "bob")
	th := createThought(t, router, "hello", "alice", "")

	rec := do(t, router, http.MethodPut, "/api/users/"+alice.ID,
		`{"friends":["`+bob.ID+`"],"thoughts":["`+th.ID+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got userJSON
	decode(t, rec, &got)
	assert.Equal(t, []string{bob.ID}, got.Friends)
	assert.Equal(t, []string{th.ID}, got.Thoughts)
	assert.Equal(t, "alice", got.Username)
}

func TestUpdateUserToTakenUsernameFails(t *testing.T) {
	router := newTestRouter()
	createUser(t, router, "alice")
	bob := createUser(t, router, "bob")

	rec := do(t, router, http.MethodPut, "/api/users/"+bob.ID, `{"username":"alice"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/users/"+bob.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got populatedUserJSON
	decode(t, rec, &got)
	assert.Equal(t, "bob", got.Username)
}

func TestUpdateThoughtSetsUserID(t *testing.T) {
	router := newTestRouter()
	alice := createUser(t, router, "alice")
	th := createThought(t, router, "hello", "alice", "")

	rec := do(t, router, http.MethodPut, "/api/thoughts/"+th.ID, `{"userId":"`+alice.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got thoughtJSON
	decode(t, rec, &got)
	assert.Equal(t, alice.ID, got.UserID)
	assert.Equal(t, "hello", got.ThoughtText)
}

func TestCreateThoughtKeepsReactions(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/api/thoughts",
		`{"thoughtText":"hi","username":"alice","reactions":[{"reactionBody":"nice","username":"bob"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got thoughtJSON
	decode(t, rec, &got)
	require.Len(t, got.Reactions, 1)
	assert.Equal(t, "nice", got.Reactions[0].ReactionBody)
	assert.NotEmpty(t, got.Reactions[0].ReactionID)
	assert.NotEqual(t, primitive.NilObjectID.Hex(), got.Reactions[0].ReactionID)
}

func TestThoughtLifecycle(t *testing.T) {
	router := newTestRouter()
	u := createUser(t, router, "alice")

	th := createThought(t, router, "hello world", "alice", u.ID)
	assert.Equal(t, u.ID, th.UserID)

	rec := do(t, router, http.MethodGet, "/api/users/"+u.ID, "")
	var owner populatedUserJSON
	decode(t, rec, &owner)
	require.Len(t, owner.Thoughts, 1)
	assert.Equal(t, th.ID, owner.Thoughts[0].ID)
	assert.Equal(t, "hello world", owner.Thoughts[0].ThoughtText)

	rec = do(t, router, http.MethodPut, "/api/thoughts/"+th.ID, `{"thoughtText":"edited"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var edited thoughtJSON
	decode(t, rec, &edited)
	assert.Equal(t, "edited", edited.ThoughtText)

	rec = do(t, router, http.MethodGet, "/api/thoughts", "")
	var all []thoughtJSON
	decode(t, rec, &all)
	require.Len(t, all, 1)

	rec = do(t, router, http.MethodDelete, "/api/thoughts/"+th.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Thought deleted"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/users/"+u.ID, "")
	decode(t, rec, &owner)
	assert.Empty(t, owner.Thoughts)
}

func TestDeleteUserCascades(t *testing.T) {
	router := newTestRouter()
	u := createUser(t, router, "alice")
	a := createThought(t, router, "one", "alice", u.ID)
	b := createThought(t, router, "two", "alice", u.ID)

	rec := do(t, router, http.MethodDelete, "/api/users/"+u.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User and associated thoughts deleted"}`, rec.Body.String())

	for _, id := range []string{a.ID, b.ID} {
		rec = do(t, router, http.MethodGet, "/api/thoughts/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestFriendRoutes(t *testing.T) {
	router := newTestRouter()
	u := createUser(t, router, "alice")
	f := createUser(t, router, "bob")
	path := "/api/users/" + u.ID + "/friends/" + f.ID

	do(t, router, http.MethodPost, path, "")
	rec := do(t, router, http.MethodPost, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got userJSON
	decode(t, rec, &got)
	assert.Equal(t, []string{f.ID, f.ID}, got.Friends)

	rec = do(t, router, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Empty(t, got.Friends)

	rec = do(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReactionRoutes(t *testing.T) {
	router := newTestRouter()
	th := createThought(t, router, "cats", "alice", "")

	rec := do(t, router, http.MethodPost, "/api/thoughts/"+th.ID+"/reactions", `{"reactionBody":"meow","username":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got thoughtJSON
	decode(t, rec, &got)
	require.Len(t, got.Reactions, 1)
	assert.Equal(t, "meow", got.Reactions[0].ReactionBody)
	reactionID := got.Reactions[0].ReactionID
	require.NotEmpty(t, reactionID)

	rec = do(t, router, http.MethodDelete, "/api/thoughts/"+th.ID+"/reactions/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Len(t, got.Reactions, 1)

	rec = do(t, router, http.MethodDelete, "/api/thoughts/"+th.ID+"/reactions/"+reactionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Empty(t, got.Reactions)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()
	router.HandleFunc("/health", HealthHandler).Methods("GET")

	rec := do(t, router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}
