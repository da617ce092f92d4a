// internal/app/tui/backend.go
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	campusstore "github.com/dalemusser/servehub/internal/app/store/campuses"
	functionstore "github.com/dalemusser/servehub/internal/app/store/functions"
	memberstore "github.com/dalemusser/servehub/internal/app/store/members"
	schedulestore "github.com/dalemusser/servehub/internal/app/store/schedules"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrUnknownFunctions is returned by Submit when an assignment references a
// function that is no longer active.
var ErrUnknownFunctions = errors.New("unknown functions")

// StaleMembersError is returned by Submit when assigned members left the
// roster after it was loaded.
type StaleMembersError struct {
	IDs []int64
}

func (e *StaleMembersError) Error() string {
	return fmt.Sprintf("members no longer on roster: %v", e.IDs)
}

// Backend supplies the reference data and stores the finished schedule.
type Backend interface {
	Roster(ctx context.Context) ([]models.Member, error)
	Campuses(ctx context.Context) ([]models.Campus, error)
	Functions(ctx context.Context) ([]models.Function, error)
	// Submit stores a prepared submission. created is false when an
	// existing schedule was updated.
	Submit(ctx context.Context, sub scheduledraft.Submission) (sch models.Schedule, created bool, err error)
}

// StoreBackend is the MongoDB Backend.
type StoreBackend struct {
	members   *memberstore.Store
	campuses  *campusstore.Store
	functions *functionstore.Store
	schedules *schedulestore.Store
	log       *zap.Logger
}

// NewStoreBackend builds a Backend over db.
func NewStoreBackend(db *mongo.Database, logger *zap.Logger) *StoreBackend {
	return &StoreBackend{
		members:   memberstore.New(db),
		campuses:  campusstore.New(db),
		functions: functionstore.New(db),
		schedules: schedulestore.New(db),
		log:       logger,
	}
}

func (b *StoreBackend) Roster(ctx context.Context) ([]models.Member, error) {
	return b.members.Roster(ctx)
}

func (b *StoreBackend) Campuses(ctx context.Context) ([]models.Campus, error) {
	return b.campuses.ListActive(ctx)
}

func (b *StoreBackend) Functions(ctx context.Context) ([]models.Function, error) {
	return b.functions.ListActive(ctx)
}

// Submit checks the members and functions of sub against the stores and
// writes the schedule. It never touches the draft sub came from.
func (b *StoreBackend) Submit(ctx context.Context, sub scheduledraft.Submission) (models.Schedule, bool, error) {
	valid, err := b.members.IDs(ctx)
	if err != nil {
		return models.Schedule{}, false, fmt.Errorf("load member ids: %w", err)
	}
	if stale := missingFrom(sub.Payload.MemberIDs, valid); len(stale) > 0 {
		b.log.Info("submission references removed members", zap.Int64s("member_ids", stale))
		return models.Schedule{}, false, &StaleMembersError{IDs: stale}
	}

	missing, err := b.functions.Missing(ctx, sub.FunctionIDs)
	if err != nil {
		return models.Schedule{}, false, fmt.Errorf("check functions: %w", err)
	}
	if len(missing) > 0 {
		return models.Schedule{}, false, fmt.Errorf("%w: %v", ErrUnknownFunctions, missing)
	}

	if sub.ScheduleID != nil {
		sch, err := b.schedules.Update(ctx, *sub.ScheduleID, sub.Payload.Schedule())
		if err != nil {
			return models.Schedule{}, false, fmt.Errorf("update schedule: %w", err)
		}
		return sch, false, nil
	}
	sch, err := b.schedules.Create(ctx, sub.Payload.Schedule())
	if err != nil {
		return models.Schedule{}, false, fmt.Errorf("create schedule: %w", err)
	}
	return sch, true, nil
}

// missingFrom returns the ids not present in valid, in order.
func missingFrom(ids, valid []int64) []int64 {
	var out []int64
	for _, id := range ids {
		if !slices.Contains(valid, id) {
			out = append(out, id)
		}
	}
	return out
}
