package handlers

import (
	"errors"
	"log"
	"net/http"

	"tuneboard/models"
	"tuneboard/repository"
	"tuneboard/utils"
)

// maxUploadMemory bounds how much of a multipart body stays in memory.
const maxUploadMemory = 10 << 20

type PostHandler struct {
	Repo      repository.PostRepository
	UploadDir string
	Renderer  *Renderer
}

// Home renders the post feed.
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.GetAllPosts()
	if err != nil {
		log.Printf("listing posts: %v", err)
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Error occurred")
		return
	}

	h.Renderer.HTML(w, r, http.StatusOK, "home", map[string]interface{}{
		"Posts": posts,
	})
}

func (h *PostHandler) ShowNewPost(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "newpost", nil)
}

// CreatePost stores the uploaded images and inserts the post.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	paths, err := utils.SaveUploadedImages(files, h.UploadDir, repository.MaxPostImages)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post := &models.Post{
		Images:      paths,
		Name:        r.PostFormValue("postName"),
		Description: r.PostFormValue("description"),
	}

	if err := h.Repo.CreatePost(post); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			utils.RemoveImageFiles(paths)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("creating post: %v", err)
		http.Error(w, "Failed to create new post", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowEditPost renders the edit form for a post; id comes from the path.
func (h *PostHandler) ShowEditPost(w http.ResponseWriter, r *http.Request, id string) {
	post, err := h.Repo.GetPostByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.Renderer.ErrorPage(w, r, http.StatusNotFound, "Post not found")
			return
		}
		h.Renderer.ErrorPage(w, r, http.StatusInternalServerError, "Error editing post: "+err.Error())
		return
	}

	h.Renderer.HTML(w, r, http.StatusOK, "editPost", map[string]interface{}{
		"Post": post,
	})
}

// UpdatePost overwrites the text fields and replaces the image list with
// exactly the newly uploaded files. Old image files are deleted from disk
// first, best-effort; uploading nothing leaves the post with no images.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request, id string) {
	post, err := h.Repo.GetPostByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error updating post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	utils.RemoveImageFiles(post.Images)

	var newPaths []string
	if files := r.MultipartForm.File["images"]; len(files) > 0 {
		newPaths, err = utils.SaveUploadedImages(files, h.UploadDir, repository.MaxPostImages)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	post.Name = r.PostFormValue("postName")
	post.Description = r.PostFormValue("description")
	post.Images = newPaths

	if err := h.Repo.UpdatePost(id, post); err != nil {
		http.Error(w, "Error updating post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// DeletePost removes the record only; image files on disk are left
// behind.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Repo.DeletePost(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
