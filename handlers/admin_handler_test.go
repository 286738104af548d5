package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tuneboard/auth"
	"tuneboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminHandler(t *testing.T) (*AdminHandler, *memUserRepo) {
	t.Helper()
	repo := &memUserRepo{}
	return &AdminHandler{Repo: repo, ReportDir: t.TempDir(), Renderer: newTestRenderer(t)}, repo
}

func seedUser(t *testing.T, repo *memUserRepo, name, password string, isAdmin bool) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&models.User{Name: name, Password: hash, IsAdmin: isAdmin}))
}

func TestAdminCreateUser(t *testing.T) {
	h, repo := newAdminHandler(t)

	req := formRequest(http.MethodPost, "/admin/new", map[string]string{
		"username": "bob", "password": "secret1", "isAdmin": "on",
	})
	rec := httptest.NewRecorder()
	h.CreateUser(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	user, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin)
	assert.True(t, auth.CheckPasswordHash("secret1", user.Password))
}

func TestAdminCreateUserWithoutCheckbox(t *testing.T) {
	h, repo := newAdminHandler(t)

	req := formRequest(http.MethodPost, "/admin/new", map[string]string{
		"username": "bob", "password": "secret1",
	})
	h.CreateUser(httptest.NewRecorder(), req)

	user, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.IsAdmin)
}

func TestAdminEditBlankPasswordKeepsHash(t *testing.T) {
	h, repo := newAdminHandler(t)
	seedUser(t, repo, "bob", "secret1", false)

	before, err := repo.GetUserByName("bob")
	require.NoError(t, err)

	req := formRequest(http.MethodPut, "/admin/edit/bob", map[string]string{
		"name": "bob", "isAdmin": "on", "password": "",
	})
	rec := httptest.NewRecorder()
	h.EditUser(rec, req, "bob")

	assert.Equal(t, http.StatusFound, rec.Code)

	after, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.Password, after.Password, "blank password must not rehash")
	assert.True(t, after.IsAdmin)
	assert.True(t, auth.CheckPasswordHash("secret1", after.Password))
}

func TestAdminEditNewPasswordRehashes(t *testing.T) {
	h, repo := newAdminHandler(t)
	seedUser(t, repo, "bob", "secret1", false)

	req := formRequest(http.MethodPut, "/admin/edit/bob", map[string]string{
		"name": "bob", "password": "newpass",
	})
	h.EditUser(httptest.NewRecorder(), req, "bob")

	after, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.False(t, auth.CheckPasswordHash("secret1", after.Password))
	assert.True(t, auth.CheckPasswordHash("newpass", after.Password))
}

func TestAdminEditRename(t *testing.T) {
	h, repo := newAdminHandler(t)
	seedUser(t, repo, "bob", "secret1", false)

	req := formRequest(http.MethodPut, "/admin/edit/bob", map[string]string{
		"name": "robert",
	})
	h.EditUser(httptest.NewRecorder(), req, "bob")

	old, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	assert.Nil(t, old)

	renamed, err := repo.GetUserByName("robert")
	require.NoError(t, err)
	require.NotNil(t, renamed)
}

func TestAdminEditRenameCollision(t *testing.T) {
	h, repo := newAdminHandler(t)
	seedUser(t, repo, "bob", "secret1", false)
	seedUser(t, repo, "alice", "secret2", false)

	req := formRequest(http.MethodPut, "/admin/edit/bob", map[string]string{
		"name": "alice",
	})
	rec := httptest.NewRecorder()
	h.EditUser(rec, req, "bob")

	assert.Contains(t, rec.Body.String(), "User already exists. Please choose another username.")

	// both originals untouched
	bob, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	assert.NotNil(t, bob)
}

func TestAdminDeleteUserWritesTombstone(t *testing.T) {
	h, repo := newAdminHandler(t)
	seedUser(t, repo, "bob", "secret1", false)

	created := repo.users[0].CreatedDate

	req := httptest.NewRequest(http.MethodDelete, "/admin/delete/bob", nil)
	rec := httptest.NewRecorder()
	h.DeleteUser(rec, req, "bob")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	gone, err := repo.GetUserByName("bob")
	require.NoError(t, err)
	assert.Nil(t, gone)

	tombstones, err := repo.GetDeletedUsers()
	require.NoError(t, err)
	require.Len(t, tombstones, 1)
	assert.Equal(t, "bob", tombstones[0].Name)
	assert.Equal(t, created, tombstones[0].CreatedDate)
	assert.False(t, tombstones[0].DeletionDate.Before(created.Add(-time.Second)))
}

func TestAdminDeleteUnknownUser(t *testing.T) {
	h, _ := newAdminHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/delete/ghost", nil)
	rec := httptest.NewRecorder()
	h.DeleteUser(rec, req, "ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
