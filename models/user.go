package models

import "time"

type User struct {
	Name        string    `json:"name" bson:"name" db:"name"`
	Password    string    `json:"-" bson:"password" db:"password"` // bcrypt hash, never serialized out
	IsAdmin     bool      `json:"is_admin" bson:"is_admin" db:"is_admin"`
	CreatedDate time.Time `json:"created_date" bson:"created_date" db:"created_date"`
	UpdatedDate time.Time `json:"updated_date" bson:"updated_date" db:"updated_date"`
}

// DeletedUser is the tombstone written when a user account is removed.
// Records are append-only; nothing in the application mutates or deletes them.
type DeletedUser struct {
	Name         string    `json:"name" bson:"name" db:"name"`
	CreatedDate  time.Time `json:"created_date" bson:"created_date" db:"created_date"`
	DeletionDate time.Time `json:"deletion_date" bson:"deletion_date" db:"deletion_date"`
}
