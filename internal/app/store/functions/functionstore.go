// internal/app/store/functions/functionstore.go
package functionstore

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/status"
	"github.com/dalemusser/servehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateFunction = errors.New("a function with this name already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("functions")}
}

func (s *Store) Create(ctx context.Context, f models.Function) (models.Function, error) {
	f.NameCI = text.Fold(f.Name)
	if f.Status == "" {
		f.Status = status.Active
	}
	if !status.Valid(f.Status) {
		return models.Function{}, status.ErrInvalid
	}
	f.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Function{}, ErrDuplicateFunction
		}
		return models.Function{}, err
	}
	return f, nil
}

// ListActive returns the assignable functions sorted by folded name.
func (s *Store) ListActive(ctx context.Context) ([]models.Function, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	fns := []models.Function{}
	if err := cur.All(ctx, &fns); err != nil {
		return nil, err
	}
	return fns, nil
}

// Missing returns the ids in ids that are not active functions, in input
// order without duplicates. An empty result means every id is assignable.
func (s *Store) Missing(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID int64 `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(rows))
	for _, r := range rows {
		found[r.ID] = true
	}

	var missing []int64
	for _, id := range ids {
		if !found[id] && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
