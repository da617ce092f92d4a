// internal/domain/models/wizarddraft.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WizardDraft is the persisted state of one schedule wizard session.
//
// A draft lives from wizard start until submit or cancel; abandoned drafts
// are removed by the TTL index on expires_at. Version increments on every
// save and guards against lost updates from concurrent requests.
type WizardDraft struct {
	ID         string              `bson:"_id" json:"id"`
	ScheduleID *primitive.ObjectID `bson:"schedule_id,omitempty" json:"schedule_id,omitempty"` // set in edit mode

	Step DraftStep `bson:"step" json:"step"`

	Title        string `bson:"title" json:"title"`
	Description  string `bson:"description" json:"description"`
	Location     string `bson:"location" json:"location"`
	Date         string `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD
	Time         string `bson:"time,omitempty" json:"time,omitempty"` // HH:MM
	CampusFilter string `bson:"campus_filter" json:"campus_filter"`

	MemberIDs       []int64           `bson:"member_ids" json:"member_ids"`
	MemberFunctions []DraftAssignment `bson:"member_functions" json:"member_functions"`

	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// DraftStep is the stored navigator state.
type DraftStep struct {
	Current   string   `bson:"current" json:"current"`
	Visited   []string `bson:"visited" json:"visited"`
	Completed []string `bson:"completed" json:"completed"`
}

// DraftAssignment is one AssignmentMap entry. Mongo documents cannot key
// maps by integers, so entries are stored as a list.
type DraftAssignment struct {
	MemberID    int64   `bson:"member_id" json:"member_id"`
	FunctionIDs []int64 `bson:"function_ids" json:"function_ids"`
}
