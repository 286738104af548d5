package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tuneboard/auth"
	"tuneboard/models"
	"tuneboard/repository"
	"tuneboard/utils"
)

type AdminHandler struct {
	Repo      repository.UserRepository
	ReportDir string
	Renderer  *Renderer
}

// AdminHome lists the active accounts and the deletion tombstones.
func (h *AdminHandler) AdminHome(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.GetAllUsers()
	if err != nil {
		log.Printf("listing users: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	deleted, err := h.Repo.GetDeletedUsers()
	if err != nil {
		log.Printf("listing deleted users: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.Renderer.HTML(w, r, http.StatusOK, "admin", map[string]interface{}{
		"Users":        users,
		"DeletedUsers": deleted,
	})
}

func (h *AdminHandler) ShowNewUser(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "addNewUser", nil)
}

// CreateUser adds an account from the admin form. The checkbox value
// "on" marks an admin account, as HTML forms submit it.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("hashing password at admin create: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:        name,
		Password:    hashed,
		IsAdmin:     r.PostFormValue("isAdmin") == "on",
		CreatedDate: now,
		UpdatedDate: now,
	}

	if err := h.Repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			w.Write([]byte("User already exists. Please choose another username."))
			return
		}
		log.Printf("creating user at admin create: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *AdminHandler) ShowEditUser(w http.ResponseWriter, r *http.Request, name string) {
	user, err := h.Repo.GetUserByName(name)
	if err != nil {
		log.Printf("loading user %q for edit: %v", name, err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Server error")
		return
	}
	if user == nil {
		h.Renderer.ErrorPage(w, r, http.StatusNotFound, "User not found")
		return
	}

	h.Renderer.HTML(w, r, http.StatusOK, "editUser", map[string]interface{}{
		"User": user,
	})
}

// EditUser renames an account, toggles the admin role, and rehashes the
// password only when a new one was actually submitted. A blank password
// field leaves the stored hash untouched.
func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request, name string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetUserByName(name)
	if err != nil {
		log.Printf("loading user %q for edit: %v", name, err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Server error")
		return
	}
	if user == nil {
		h.Renderer.ErrorPage(w, r, http.StatusNotFound, "User not found")
		return
	}

	if newName := r.PostFormValue("name"); newName != "" {
		user.Name = newName
	}
	user.IsAdmin = r.PostFormValue("isAdmin") == "on"

	if password := r.PostFormValue("password"); password != "" {
		hashed, err := auth.HashPassword(password)
		if err != nil {
			log.Printf("hashing password at admin edit: %v", err)
			h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Server error")
			return
		}
		user.Password = hashed
	}

	if err := h.Repo.UpdateUser(name, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateName):
			w.Write([]byte("User already exists. Please choose another username."))
		case errors.Is(err, repository.ErrNotFound):
			h.Renderer.ErrorPage(w, r, http.StatusNotFound, "User not found")
		default:
			log.Printf("updating user %q: %v", name, err)
			h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Server error")
		}
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

// DeleteUser removes the account and writes its tombstone.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.Repo.DeleteUser(name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.Renderer.ErrorPage(w, r, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("deleting user %q: %v", name, err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

// UsersReport generates the PDF report, saves it locally, and uploads it
// to R2 when object storage is configured.
func (h *AdminHandler) UsersReport(w http.ResponseWriter, r *http.Request) {
	saveDir := h.ReportDir
	if saveDir == "" {
		saveDir = "./reports"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		http.Error(w, "failed to create save directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pdfBytes, err := utils.GenerateUsersReportPDF(h.Repo)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("users_report_%d.pdf", time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)
	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		http.Error(w, "failed to save PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var fileURL string
	if utils.R2Configured() {
		fileURL, err = utils.UploadToR2(pdfBytes, filename, "application/pdf")
		if err != nil {
			// The report exists locally; the upload failure is not fatal.
			log.Printf("uploading report %s to R2: %v", filename, err)
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Report generated",
		Data: map[string]string{
			"file": filename,
			"url":  fileURL,
		},
	})
}
