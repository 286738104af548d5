package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tuneboard/auth"
	"tuneboard/i18n"
	"tuneboard/models"
	"tuneboard/repository"

	"github.com/stretchr/testify/require"
)

// memUserRepo implements repository.UserRepository in memory, honoring
// the same contract as the database-backed versions.
type memUserRepo struct {
	users   []*models.User
	deleted []*models.DeletedUser
}

func (m *memUserRepo) CreateUser(user *models.User) error {
	for _, u := range m.users {
		if u.Name == user.Name {
			return repository.ErrDuplicateName
		}
	}
	now := time.Now().UTC()
	if user.CreatedDate.IsZero() {
		user.CreatedDate = now
	}
	if user.UpdatedDate.IsZero() {
		user.UpdatedDate = now
	}
	cp := *user
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUserRepo) GetUserByName(name string) (*models.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetAllUsers() ([]*models.User, error) {
	return m.users, nil
}

func (m *memUserRepo) UpdateUser(name string, user *models.User) error {
	if user.Name != name {
		for _, u := range m.users {
			if u.Name == user.Name {
				return repository.ErrDuplicateName
			}
		}
	}
	for i, u := range m.users {
		if u.Name == name {
			user.UpdatedDate = time.Now().UTC()
			cp := *user
			m.users[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memUserRepo) DeleteUser(name string) error {
	for i, u := range m.users {
		if u.Name == name {
			m.deleted = append(m.deleted, &models.DeletedUser{
				Name:         u.Name,
				CreatedDate:  u.CreatedDate,
				DeletionDate: time.Now().UTC(),
			})
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memUserRepo) GetDeletedUsers() ([]*models.DeletedUser, error) {
	return m.deleted, nil
}

// memPostRepo implements repository.PostRepository in memory.
type memPostRepo struct {
	posts []*models.Post
}

func (m *memPostRepo) CreatePost(post *models.Post) error {
	if err := repository.ValidatePost(post); err != nil {
		return err
	}
	if post.ID == "" {
		post.ID = repository.NewID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	cp := *post
	m.posts = append(m.posts, &cp)
	return nil
}

func (m *memPostRepo) GetPostByID(id string) (*models.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPostRepo) GetAllPosts() ([]*models.Post, error) {
	return m.posts, nil
}

func (m *memPostRepo) UpdatePost(id string, post *models.Post) error {
	for i, p := range m.posts {
		if p.ID == id {
			now := time.Now().UTC()
			post.UpdatedAt = &now
			if post.Images == nil {
				post.Images = []string{}
			}
			cp := *post
			cp.ID = id
			m.posts[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPostRepo) DeletePost(id string) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memSessionRepo backs the session manager in tests.
type memSessionRepo struct {
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*models.Session{}}
}

func (m *memSessionRepo) GetSession(id string) (*models.Session, error) {
	session, ok := m.sessions[id]
	if !ok || session.Expired(time.Now().UTC()) {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (m *memSessionRepo) SaveSession(session *models.Session) error {
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memSessionRepo) DeleteSession(id string) error {
	delete(m.sessions, id)
	return nil
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	bundle, err := i18n.Load("../locales", []string{"en", "ru"}, "en")
	require.NoError(t, err)
	renderer, err := NewRenderer("../templates", bundle)
	require.NoError(t, err)
	return renderer
}

func newTestSessions() (*auth.SessionManager, *memSessionRepo) {
	repo := newMemSessionRepo()
	return auth.NewSessionManager(repo), repo
}

// withTestSession attaches a session to the request the way the routes
// middleware does.
func withTestSession(r *http.Request, session *models.Session) *http.Request {
	return WithSession(r, session)
}

func anonSession() *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		ID:        repository.NewID(),
		Lang:      "en",
		CreatedAt: now,
		ExpiresAt: now.Add(auth.SessionLifetime),
	}
}

func formRequest(method, target string, form map[string]string) *http.Request {
	body := ""
	for k, v := range form {
		if body != "" {
			body += "&"
		}
		body += fmt.Sprintf("%s=%s", k, v)
	}
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartRequest builds a multipart form with text fields and fake
// image files.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, images []string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, name := range images {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
