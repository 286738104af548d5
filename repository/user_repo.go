package repository

import "tuneboard/models"

// UserRepository defines the interface for user account operations.
// DeleteUser writes a DeletedUser tombstone before removing the account;
// the two writes are sequential, not transactional.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByName(name string) (*models.User, error)
	GetAllUsers() ([]*models.User, error)
	UpdateUser(name string, user *models.User) error
	DeleteUser(name string) error
	GetDeletedUsers() ([]*models.DeletedUser, error)
}
