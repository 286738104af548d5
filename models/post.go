package models

import "time"

type Post struct {
	ID          string     `json:"id" bson:"_id" db:"id"`
	Images      []string   `json:"images" bson:"images" db:"images"`
	Name        string     `json:"name" bson:"name" db:"name"`
	Description string     `json:"description" bson:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty" db:"deleted_at"`
}
