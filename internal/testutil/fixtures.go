package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/status"
	"github.com/dalemusser/servehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCampus inserts an active campus.
func (f *Fixtures) CreateCampus(ctx context.Context, id int64, name string) models.Campus {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Campus{
		ID:        id,
		Name:      name,
		NameCI:    text.Fold(name),
		City:      "Test City",
		Status:    status.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("campuses").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test campus: %v", err)
	}
	return c
}

// CreateMember inserts an active member with the campus set on campus_id.
// A nil campusID leaves the member without a campus.
func (f *Fixtures) CreateMember(ctx context.Context, id int64, name string, campusID *int64) models.Member {
	f.t.Helper()
	return f.insertMember(ctx, models.Member{ID: id, FullName: name, CampusID: campusID})
}

// CreateLegacyMember inserts a member whose campus is only present on the
// embedded campus reference, the shape of older records.
func (f *Fixtures) CreateLegacyMember(ctx context.Context, id int64, name string, campusID int64) models.Member {
	f.t.Helper()
	return f.insertMember(ctx, models.Member{
		ID:       id,
		FullName: name,
		Campus:   &models.CampusRef{ID: &campusID},
	})
}

func (f *Fixtures) insertMember(ctx context.Context, m models.Member) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m.FullNameCI = text.Fold(m.FullName)
	if m.Email == "" {
		m.Email = text.Fold(m.FullName) + "@test.com"
	}
	m.Status = status.Active
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateFunction inserts an active function.
func (f *Fixtures) CreateFunction(ctx context.Context, id int64, name string) models.Function {
	f.t.Helper()

	fn := models.Function{
		ID:        id,
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    status.Active,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("functions").InsertOne(ctx, fn); err != nil {
		f.t.Fatalf("failed to create test function: %v", err)
	}
	return fn
}

// CreateSchedule inserts a schedule. Members maps member id to function ids
// and keeps the order given by order.
func (f *Fixtures) CreateSchedule(ctx context.Context, title, date, clock string, order []int64, fns map[int64][]int64) models.Schedule {
	f.t.Helper()

	members := make([]models.ScheduleMember, 0, len(order))
	for _, id := range order {
		refs := []models.ScheduleFunctionRef{}
		for _, fid := range fns[id] {
			refs = append(refs, models.ScheduleFunctionRef{FunctionID: fid})
		}
		members = append(members, models.ScheduleMember{UserID: id, Functions: refs})
	}
	s := models.Schedule{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Location:  "Main hall",
		Date:      date,
		Time:      clock,
		Members:   members,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("schedules").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test schedule: %v", err)
	}
	return s
}
