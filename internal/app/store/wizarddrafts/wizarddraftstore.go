// internal/app/store/wizarddrafts/wizarddraftstore.go
package wizarddraftstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/servehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultTTL is how long an untouched draft is kept.
const DefaultTTL = 24 * time.Hour

var (
	ErrNotFound = errors.New("wizard draft not found")
	// ErrConflict is returned by Save when the draft changed since it was loaded.
	ErrConflict = errors.New("wizard draft was modified concurrently")
)

type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New returns a store whose drafts expire ttl after their last save.
// A non-positive ttl uses DefaultTTL.
func New(db *mongo.Database, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{c: db.Collection("wizard_drafts"), ttl: ttl}
}

// Create stores a new draft with a fresh id and version 1.
func (s *Store) Create(ctx context.Context, d models.WizardDraft) (models.WizardDraft, error) {
	now := time.Now().UTC()
	d.ID = uuid.NewString()
	d.Version = 1
	d.CreatedAt = now
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(s.ttl)
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.WizardDraft{}, err
	}
	return d, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.WizardDraft, error) {
	var d models.WizardDraft
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.WizardDraft{}, ErrNotFound
	}
	if err != nil {
		return models.WizardDraft{}, err
	}
	return d, nil
}

// Save writes d if the stored version still equals d.Version, bumps the
// version and extends the expiry. It returns ErrConflict when another
// writer saved first and ErrNotFound when the draft is gone.
func (s *Store) Save(ctx context.Context, d models.WizardDraft) (models.WizardDraft, error) {
	expected := d.Version
	now := time.Now().UTC()
	d.Version = expected + 1
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(s.ttl)

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": d.ID, "version": expected}, d)
	if err != nil {
		return models.WizardDraft{}, err
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": d.ID})
		if err != nil {
			return models.WizardDraft{}, err
		}
		if n == 0 {
			return models.WizardDraft{}, ErrNotFound
		}
		return models.WizardDraft{}, ErrConflict
	}
	return d, nil
}

// Delete removes a draft.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
