package repository

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"tuneboard/models"
)

const (
	// MaxPostImages caps how many images a single post may carry.
	MaxPostImages = 3
)

// PostRepository defines the interface for post operations.
// UpdatePost replaces the image list verbatim with whatever the caller
// passes, including an empty list; it never merges.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	GetAllPosts() ([]*models.Post, error)
	UpdatePost(id string, post *models.Post) error
	DeletePost(id string) error
}

// ValidatePost checks the constraints shared by both backends before a
// post is inserted.
func ValidatePost(post *models.Post) error {
	if strings.TrimSpace(post.Name) == "" {
		return fmt.Errorf("%w: post name is required", ErrValidation)
	}
	if strings.TrimSpace(post.Description) == "" {
		return fmt.Errorf("%w: post description is required", ErrValidation)
	}
	if len(post.Images) == 0 {
		return fmt.Errorf("%w: a post needs at least one image", ErrValidation)
	}
	if len(post.Images) > MaxPostImages {
		return fmt.Errorf("%w: a post can carry at most %d images", ErrValidation, MaxPostImages)
	}
	return nil
}

// NewID returns an opaque hex identifier usable as a document _id in
// Mongo and a TEXT primary key in Postgres.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("repository: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
