// internal/domain/models/function.go
package models

import "time"

// Function is a role a member can take within a schedule (usher, sound,
// reception, ...).
type Function struct {
	ID          int64     `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	NameCI      string    `bson:"name_ci" json:"-"`
	Description string    `bson:"description" json:"description,omitempty"`
	Status      string    `bson:"status" json:"status,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
}
