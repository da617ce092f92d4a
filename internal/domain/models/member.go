// internal/domain/models/member.go
package models

import "time"

// Member is a schedulable volunteer as supplied by the members-listing
// service.
//
// NOTE:
//   - Older records carry the campus only as an embedded reference
//     (campus.id); newer ones set campus_id directly. Either may be absent.
//     Resolve the campus through candidates.EffectiveCampusID, never by
//     reading one field.
type Member struct {
	ID         int64      `bson:"_id" json:"id"`
	FullName   string     `bson:"full_name" json:"name"`
	FullNameCI string     `bson:"full_name_ci" json:"-"`
	Email      string     `bson:"email" json:"email"`
	CampusID   *int64     `bson:"campus_id,omitempty" json:"campus_id,omitempty"`
	Campus     *CampusRef `bson:"campus,omitempty" json:"campus,omitempty"`
	Status     string     `bson:"status" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// CampusRef is the embedded campus reference found on older member records.
type CampusRef struct {
	ID   *int64 `bson:"id,omitempty" json:"id,omitempty"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
}
