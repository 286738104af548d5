package repository

import (
	"database/sql"
	"time"

	"tuneboard/models"
)

type PostgresSessionRepo struct {
	DB *sql.DB
}

func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{DB: db}
}

func (r *PostgresSessionRepo) GetSession(id string) (*models.Session, error) {
	session := &models.Session{}
	err := r.DB.QueryRow(`
		SELECT id, is_auth, is_auth_admin, name, lang, created_at, expires_at
		FROM sessions
		WHERE id=$1
	`, id).Scan(&session.ID, &session.IsAuth, &session.IsAuthAdmin,
		&session.Name, &session.Lang, &session.CreatedAt, &session.ExpiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	// Postgres has no TTL monitor; expired rows are reaped lazily here.
	if session.Expired(time.Now().UTC()) {
		_, _ = r.DB.Exec(`DELETE FROM sessions WHERE id=$1`, id)
		return nil, nil
	}

	return session, nil
}

func (r *PostgresSessionRepo) SaveSession(session *models.Session) error {
	_, err := r.DB.Exec(`
		INSERT INTO sessions (id, is_auth, is_auth_admin, name, lang, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET is_auth=$2, is_auth_admin=$3, name=$4, lang=$5, expires_at=$7
	`, session.ID, session.IsAuth, session.IsAuthAdmin, session.Name,
		session.Lang, session.CreatedAt, session.ExpiresAt)
	return err
}

func (r *PostgresSessionRepo) DeleteSession(id string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id=$1`, id)
	return err
}
