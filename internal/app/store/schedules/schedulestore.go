// internal/app/store/schedules/schedulestore.go
package schedulestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/servehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no schedule has the requested id.
var ErrNotFound = errors.New("schedule not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schedules")}
}

// Create inserts a new schedule and returns it with its id and timestamps.
func (s *Store) Create(ctx context.Context, sch models.Schedule) (models.Schedule, error) {
	sch.ID = primitive.NewObjectID()
	sch.TitleCI = text.Fold(sch.Title)
	sch.CreatedAt = time.Now().UTC()
	sch.UpdatedAt = nil
	if sch.Members == nil {
		sch.Members = []models.ScheduleMember{}
	}
	if _, err := s.c.InsertOne(ctx, sch); err != nil {
		return models.Schedule{}, err
	}
	return sch, nil
}

// Update replaces the editable fields and member assignments of an existing
// schedule in one write and returns the stored result.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, sch models.Schedule) (models.Schedule, error) {
	members := sch.Members
	if members == nil {
		members = []models.ScheduleMember{}
	}
	set := bson.M{
		"title":       sch.Title,
		"title_ci":    text.Fold(sch.Title),
		"description": sch.Description,
		"location":    sch.Location,
		"date":        sch.Date,
		"time":        sch.Time,
		"members":     members,
		"updated_at":  time.Now().UTC(),
	}
	var out models.Schedule
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Schedule{}, ErrNotFound
	}
	if err != nil {
		return models.Schedule{}, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Schedule, error) {
	var sch models.Schedule
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Schedule{}, ErrNotFound
	}
	if err != nil {
		return models.Schedule{}, err
	}
	return sch, nil
}
