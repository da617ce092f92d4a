// internal/domain/models/schedule.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is a service schedule (event) with its assigned members.
//
// Date is a calendar date (YYYY-MM-DD) and Time a wall-clock time (HH:MM);
// neither carries a zone. Members keeps submission order.
type Schedule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Members     []ScheduleMember   `bson:"members" json:"members"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ScheduleMember is one assigned member and the functions they hold.
// An empty Functions list means "no specific function".
type ScheduleMember struct {
	UserID    int64                 `bson:"user_id" json:"user_id"`
	Functions []ScheduleFunctionRef `bson:"functions" json:"functions"`
}

// ScheduleFunctionRef references a Function by id.
type ScheduleFunctionRef struct {
	FunctionID int64 `bson:"function_id" json:"function_id"`
}

// MemberIDs returns the assigned member ids in order.
func (s Schedule) MemberIDs() []int64 {
	out := make([]int64, 0, len(s.Members))
	for _, m := range s.Members {
		out = append(out, m.UserID)
	}
	return out
}

// FunctionIDs returns the function ids of one assignment in order.
func (m ScheduleMember) FunctionIDs() []int64 {
	out := make([]int64, 0, len(m.Functions))
	for _, f := range m.Functions {
		out = append(out, f.FunctionID)
	}
	return out
}
