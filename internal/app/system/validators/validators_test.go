package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/validators"
	"github.com/dalemusser/servehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"schedules", "wizard_drafts", "members", "campuses", "functions"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestEnsureAll_ScheduleValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	coll := db.Collection("schedules")

	valid := bson.M{
		"_id":        primitive.NewObjectID(),
		"title":      "Sunday Service",
		"title_ci":   "sunday service",
		"date":       "2026-11-01",
		"time":       "09:30",
		"members":    bson.A{bson.M{"user_id": int64(1), "functions": bson.A{}}},
		"created_at": time.Now(),
	}
	if _, err := coll.InsertOne(ctx, valid); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(bson.M)
	}{
		{"blank title", func(d bson.M) { d["title"] = "   " }},
		{"bad date", func(d bson.M) { d["date"] = "11/01/2026" }},
		{"no members", func(d bson.M) { d["members"] = bson.A{} }},
		{"missing time", func(d bson.M) { delete(d, "time") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := bson.M{}
			for k, v := range valid {
				doc[k] = v
			}
			doc["_id"] = primitive.NewObjectID()
			tt.mutate(doc)
			if _, err := coll.InsertOne(ctx, doc); err == nil {
				t.Error("expected the validator to reject the document")
			}
		})
	}
}
