// Package mongo provides MongoDB-backed persistence for the activities collection.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/activities/internal/domain"
)

// CollectionName is the collection holding one document per activity.
const CollectionName = "activities"

// Repository implements domain.ActivityRepository on top of a Mongo collection.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs a Repository bound to the activities collection.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection(CollectionName)}
}

// List returns every activity document, projecting out the storage identifier.
func (r *Repository) List(ctx context.Context) ([]domain.Activity, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	var activities []domain.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, classify(err)
	}
	return activities, nil
}

// FindByName fetches one activity by exact name match. Returns nil, nil when
// no document matches.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return &activity, nil
}

// AddParticipant appends the email to the roster as a single conditional
// update: the document only matches while the email is absent, so concurrent
// duplicate signups cannot both land.
func (r *Repository) AddParticipant(ctx context.Context, name, email string) (bool, error) {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"name": name, "participants": bson.M{"$ne": email}},
		bson.M{"$push": bson.M{"participants": email}},
	)
	if err != nil {
		return false, classify(err)
	}
	return result.ModifiedCount == 1, nil
}

// RemoveParticipant pulls the email from the roster. The filter requires the
// email to be present so a lost race reports zero modified documents.
func (r *Repository) RemoveParticipant(ctx context.Context, name, email string) (bool, error) {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"name": name, "participants": email},
		bson.M{"$pull": bson.M{"participants": email}},
	)
	if err != nil {
		return false, classify(err)
	}
	return result.ModifiedCount == 1, nil
}

// classify wraps transient driver failures in domain.ErrStoreUnavailable so
// the boundary maps them to a 5xx distinct from domain errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
