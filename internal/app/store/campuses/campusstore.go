// internal/app/store/campuses/campusstore.go
package campusstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/status"
	"github.com/dalemusser/servehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateCampus = errors.New("a campus with this name already exists")
	ErrNotFound        = errors.New("campus not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("campuses")}
}

// Create inserts a campus. IDs are issued by the campus-listing service, so
// c.ID must already be set.
func (s *Store) Create(ctx context.Context, c models.Campus) (models.Campus, error) {
	now := time.Now().UTC()
	c.NameCI = text.Fold(c.Name)
	if c.Status == "" {
		c.Status = status.Active
	}
	if !status.Valid(c.Status) {
		return models.Campus{}, status.ErrInvalid
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Campus{}, ErrDuplicateCampus
		}
		return models.Campus{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Campus, error) {
	var c models.Campus
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Campus{}, ErrNotFound
	}
	if err != nil {
		return models.Campus{}, err
	}
	return c, nil
}

// ListActive returns active campuses sorted by folded name.
func (s *Store) ListActive(ctx context.Context) ([]models.Campus, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	campuses := []models.Campus{}
	if err := cur.All(ctx, &campuses); err != nil {
		return nil, err
	}
	return campuses, nil
}
