package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tuneboard/auth"
	"tuneboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserHandler(t *testing.T) (*UserHandler, *memUserRepo) {
	t.Helper()
	repo := &memUserRepo{}
	sessions, _ := newTestSessions()
	return &UserHandler{Repo: repo, Sessions: sessions, Renderer: newTestRenderer(t)}, repo
}

func TestSignupCreatesUser(t *testing.T) {
	h, repo := newUserHandler(t)

	req := formRequest(http.MethodPost, "/signup", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	user, err := repo.GetUserByName("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, auth.CheckPasswordHash("secret1", user.Password))
}

func TestSignupDuplicateName(t *testing.T) {
	h, repo := newUserHandler(t)

	first := formRequest(http.MethodPost, "/signup", map[string]string{
		"username": "alice", "password": "secret1",
	})
	h.Signup(httptest.NewRecorder(), first)

	second := formRequest(http.MethodPost, "/signup", map[string]string{
		"username": "alice", "password": "other",
	})
	rec := httptest.NewRecorder()
	h.Signup(rec, second)

	assert.Contains(t, rec.Body.String(), "User already exists. Please choose another username.")
	users, err := repo.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSignupMissingFields(t *testing.T) {
	h, repo := newUserHandler(t)

	req := formRequest(http.MethodPost, "/signup", map[string]string{"username": "alice"})
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users, err := repo.GetAllUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoginSuccess(t *testing.T) {
	h, repo := newUserHandler(t)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&models.User{Name: "alice", Password: hash}))

	session := anonSession()
	require.NoError(t, h.Sessions.Save(session))

	req := formRequest(http.MethodPost, "/login", map[string]string{
		"username": "alice", "password": "secret1",
	})
	req = withTestSession(req, session)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.True(t, session.IsAuth)
	assert.False(t, session.IsAuthAdmin)
	assert.Equal(t, "alice", session.Name)
}

func TestLoginAdminSetsAdminFlag(t *testing.T) {
	h, repo := newUserHandler(t)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&models.User{Name: "root", Password: hash, IsAdmin: true}))

	session := anonSession()
	require.NoError(t, h.Sessions.Save(session))

	req := formRequest(http.MethodPost, "/login", map[string]string{
		"username": "root", "password": "secret1",
	})
	req = withTestSession(req, session)
	h.Login(httptest.NewRecorder(), req)

	assert.True(t, session.IsAuth)
	assert.True(t, session.IsAuthAdmin)
}

func TestLoginWrongUsername(t *testing.T) {
	h, _ := newUserHandler(t)

	session := anonSession()
	req := formRequest(http.MethodPost, "/login", map[string]string{
		"username": "nobody", "password": "secret1",
	})
	req = withTestSession(req, session)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Contains(t, rec.Body.String(), "Wrong username")
	assert.False(t, session.IsAuth)
}

func TestLoginWrongPassword(t *testing.T) {
	h, repo := newUserHandler(t)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&models.User{Name: "alice", Password: hash}))

	session := anonSession()
	req := formRequest(http.MethodPost, "/login", map[string]string{
		"username": "alice", "password": "wrong",
	})
	req = withTestSession(req, session)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Contains(t, rec.Body.String(), "Wrong password")
	assert.False(t, session.IsAuth)
}

func TestLogoutDestroysSession(t *testing.T) {
	h, repo := newUserHandler(t)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&models.User{Name: "alice", Password: hash}))

	session := anonSession()
	require.NoError(t, h.Sessions.Save(session))
	require.NoError(t, h.Sessions.Login(session, &models.User{Name: "alice"}))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = withTestSession(req, session)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	stored, err := h.Sessions.Repo.GetSession(session.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
