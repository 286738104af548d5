package repository

import (
	"database/sql"
	"time"

	"tuneboard/models"

	"github.com/lib/pq"
)

type PostgresPostRepo struct {
	DB *sql.DB
}

func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{DB: db}
}

func (r *PostgresPostRepo) CreatePost(post *models.Post) error {
	if err := ValidatePost(post); err != nil {
		return err
	}
	if post.ID == "" {
		post.ID = NewID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.Exec(`
		INSERT INTO posts (id, images, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, post.ID, pq.Array(post.Images), post.Name, post.Description, post.CreatedAt)

	return err
}

func (r *PostgresPostRepo) GetPostByID(id string) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRow(`
		SELECT id, images, name, description, created_at, updated_at, deleted_at
		FROM posts
		WHERE id=$1
	`, id).Scan(&post.ID, pq.Array(&post.Images), &post.Name, &post.Description,
		&post.CreatedAt, &post.UpdatedAt, &post.DeletedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return post, nil
}

func (r *PostgresPostRepo) GetAllPosts() ([]*models.Post, error) {
	rows, err := r.DB.Query(`
		SELECT id, images, name, description, created_at, updated_at, deleted_at
		FROM posts
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, pq.Array(&p.Images), &p.Name, &p.Description,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPostRepo) UpdatePost(id string, post *models.Post) error {
	now := time.Now().UTC()
	post.UpdatedAt = &now

	images := post.Images
	if images == nil {
		images = []string{}
	}

	res, err := r.DB.Exec(`
		UPDATE posts
		SET name=$1, description=$2, images=$3, updated_at=$4
		WHERE id=$5
	`, post.Name, post.Description, pq.Array(images), post.UpdatedAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepo) DeletePost(id string) error {
	res, err := r.DB.Exec(`DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
