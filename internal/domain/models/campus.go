// internal/domain/models/campus.go
package models

import "time"

// Campus is a site members belong to. Campuses are maintained by the
// campus-listing service; this app only reads them to filter the roster.
type Campus struct {
	ID        int64     `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	NameCI    string    `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	City      string    `bson:"city" json:"city"`
	Status    string    `bson:"status" json:"status,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
