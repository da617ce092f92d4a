// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/normalize"
	"github.com/dalemusser/servehub/internal/app/system/status"
	"github.com/dalemusser/servehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no member has the requested id.
var ErrNotFound = errors.New("member not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// Upsert writes a member received from the members-listing service,
// normalizing name and email. The campus fields are stored as given; the
// roster may carry either shape.
func (s *Store) Upsert(ctx context.Context, m models.Member) (models.Member, error) {
	now := time.Now().UTC()
	m.FullName = normalize.Name(m.FullName)
	m.FullNameCI = text.Fold(m.FullName)
	m.Email = normalize.Email(m.Email)
	if m.Status == "" {
		m.Status = status.Active
	}
	if !status.Valid(m.Status) {
		return models.Member{}, status.ErrInvalid
	}
	m.UpdatedAt = now

	set := bson.M{
		"full_name":    m.FullName,
		"full_name_ci": m.FullNameCI,
		"email":        m.Email,
		"status":       m.Status,
		"updated_at":   now,
		"campus_id":    m.CampusID,
		"campus":       m.Campus,
	}
	_, err := s.c.UpdateByID(ctx, m.ID,
		bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": now}},
		options.Update().SetUpsert(true))
	if err != nil {
		return models.Member{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// Roster returns every active member sorted by folded name. Campus filtering
// happens in memory so that both campus field shapes are honored.
func (s *Store) Roster(ctx context.Context) ([]models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	members := []models.Member{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// IDs returns the ids of all active members.
func (s *Store) IDs(ctx context.Context) ([]int64, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
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
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids, nil
}
