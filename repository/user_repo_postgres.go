package repository

import (
	"database/sql"
	"errors"
	"time"

	"tuneboard/models"

	"github.com/lib/pq"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// isUniqueViolation reports whether err is the Postgres unique_violation
// error raised by the UNIQUE constraint on users.name.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *PostgresUserRepo) CreateUser(user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedDate.IsZero() {
		user.CreatedDate = now
	}
	if user.UpdatedDate.IsZero() {
		user.UpdatedDate = now
	}

	existing, err := r.GetUserByName(user.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateName
	}

	_, err = r.DB.Exec(`
		INSERT INTO users (name, password, is_admin, created_date, updated_date)
		VALUES ($1, $2, $3, $4, $5)
	`, user.Name, user.Password, user.IsAdmin, user.CreatedDate, user.UpdatedDate)

	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *PostgresUserRepo) GetUserByName(name string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRow(`
		SELECT name, password, is_admin, created_date, updated_date
		FROM users
		WHERE name=$1
	`, name).Scan(&user.Name, &user.Password, &user.IsAdmin, &user.CreatedDate, &user.UpdatedDate)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresUserRepo) GetAllUsers() ([]*models.User, error) {
	rows, err := r.DB.Query(`
		SELECT name, password, is_admin, created_date, updated_date
		FROM users
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.Name, &u.Password, &u.IsAdmin, &u.CreatedDate, &u.UpdatedDate); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) UpdateUser(name string, user *models.User) error {
	if user.Name != name {
		existing, err := r.GetUserByName(user.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateName
		}
	}

	user.UpdatedDate = time.Now().UTC()
	res, err := r.DB.Exec(`
		UPDATE users
		SET name=$1, password=$2, is_admin=$3, updated_date=$4
		WHERE name=$5
	`, user.Name, user.Password, user.IsAdmin, user.UpdatedDate, name)

	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
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

func (r *PostgresUserRepo) DeleteUser(name string) error {
	user, err := r.GetUserByName(name)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	// Tombstone first, then the delete. No transaction: a failure after
	// the insert leaves the account intact alongside its tombstone.
	_, err = r.DB.Exec(`
		INSERT INTO deleted_users (name, created_date, deletion_date)
		VALUES ($1, $2, $3)
	`, user.Name, user.CreatedDate, time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(`DELETE FROM users WHERE name=$1`, name)
	return err
}

func (r *PostgresUserRepo) GetDeletedUsers() ([]*models.DeletedUser, error) {
	rows, err := r.DB.Query(`
		SELECT name, created_date, deletion_date
		FROM deleted_users
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.DeletedUser
	for rows.Next() {
		d := &models.DeletedUser{}
		if err := rows.Scan(&d.Name, &d.CreatedDate, &d.DeletionDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
