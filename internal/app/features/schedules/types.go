// internal/app/features/schedules/types.go
package schedules

import (
	"github.com/dalemusser/servehub/internal/app/system/assignments"
	"github.com/dalemusser/servehub/internal/app/system/candidates"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"github.com/dalemusser/servehub/internal/domain/models"
)

type startRequest struct {
	ScheduleID string `json:"schedule_id"`
}

type gotoRequest struct {
	Step string `json:"step"`
}

type fieldsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type campusRequest struct {
	Campus string `json:"campus"`
}

type functionsRequest struct {
	FunctionIDs []int64 `json:"function_ids"`
}

type fieldsView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// draftResponse is the snapshot returned by every wizard endpoint.
type draftResponse struct {
	DraftID         string            `json:"draft_id"`
	ScheduleID      string            `json:"schedule_id,omitempty"`
	Version         int64             `json:"version"`
	Moved           *bool             `json:"moved,omitempty"`
	Wizard          wizard.Snapshot   `json:"wizard"`
	Fields          fieldsView        `json:"fields"`
	CampusFilter    string            `json:"campus_filter"`
	MemberIDs       []int64           `json:"member_ids"`
	MemberFunctions map[int64][]int64 `json:"member_functions"`
	Stats           assignments.Stats `json:"stats"`
}

func newDraftResponse(d *scheduledraft.Draft) draftResponse {
	resp := draftResponse{
		DraftID: d.ID,
		Version: d.Version,
		Wizard:  d.Nav.Snapshot(),
		Fields: fieldsView{
			Title:       d.Fields.Title,
			Description: d.Fields.Description,
			Location:    d.Fields.Location,
			Date:        d.Date,
			Time:        d.Time,
		},
		CampusFilter:    d.CampusFilter,
		MemberIDs:       d.Members.Selected(),
		MemberFunctions: d.Members.Assignments(),
		Stats:           d.Members.CompletionStats(),
	}
	if d.ScheduleID != nil {
		resp.ScheduleID = d.ScheduleID.Hex()
	}
	return resp
}

type candidateView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	CampusID    *int64  `json:"campus_id"`
	Selected    bool    `json:"selected"`
	FunctionIDs []int64 `json:"function_ids"`
}

type candidatesResponse struct {
	CampusFilter string            `json:"campus_filter"`
	Query        string            `json:"q,omitempty"`
	Members      []candidateView   `json:"members"`
	Counts       candidates.Counts `json:"counts"`
}

// selectedFunctionsView lists the functions step rows: each selected member
// with the functions currently assigned.
type selectedFunctionsView struct {
	Members   []candidateView   `json:"members"`
	Functions []models.Function `json:"functions"`
	Stats     assignments.Stats `json:"stats"`
}

type submitResponse struct {
	Created  bool            `json:"created"`
	Schedule models.Schedule `json:"schedule"`
}
