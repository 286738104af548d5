package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"tuneboard/auth"
	"tuneboard/models"
	"tuneboard/repository"
)

type UserHandler struct {
	Repo     repository.UserRepository
	Sessions *auth.SessionManager
	Renderer *Renderer
}

func (h *UserHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "login", nil)
}

func (h *UserHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "signup", nil)
}

// Signup registers a new non-admin account and redirects to the login
// page. Duplicates are rejected both here and by the storage-level unique
// index.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if name == "" || password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("hashing password at signup: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Error occurred")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:        name,
		Password:    hashed,
		IsAdmin:     false,
		CreatedDate: now,
		UpdatedDate: now,
	}

	if err := h.Repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			w.Write([]byte("User already exists. Please choose another username."))
			return
		}
		log.Printf("creating user at signup: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Error occurred")
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Login verifies the credentials and promotes the session. An admin
// account additionally sets the admin flag on the session.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetUserByName(r.PostFormValue("username"))
	if err != nil {
		log.Printf("looking up user at login: %v", err)
		w.Write([]byte("Login Error"))
		return
	}
	if user == nil {
		w.Write([]byte("Wrong username"))
		return
	}

	if !auth.CheckPasswordHash(r.PostFormValue("password"), user.Password) {
		w.Write([]byte("Wrong password"))
		return
	}

	session := SessionFrom(r)
	if err := h.Sessions.Login(session, user); err != nil {
		log.Printf("saving session at login: %v", err)
		w.Write([]byte("Login Error"))
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout destroys the session. The id never authenticates again.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r)
	if err := h.Sessions.Destroy(w, session); err != nil {
		log.Printf("destroying session at logout: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
