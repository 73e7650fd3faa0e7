package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoIdentityRepository struct {
	collection *mongo.Collection
}

var _ contract.IIdentityRepository = (*MongoIdentityRepository)(nil)

func NewMongoIdentityRepository(collection *mongo.Collection) *MongoIdentityRepository {
	return &MongoIdentityRepository{collection: collection}
}

func (r *MongoIdentityRepository) CreateIdentity(ctx context.Context, identity *entity.Identity) error {
	_, err := r.collection.InsertOne(ctx, identity)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("identity %s: %w", identity.Email, entity.ErrConflict)
	}
	return err
}

func (r *MongoIdentityRepository) GetIdentityByID(ctx context.Context, id string) (*entity.Identity, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoIdentityRepository) GetIdentityByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// MarkEmailConfirmed only matches identities that are still pending.
func (r *MongoIdentityRepository) MarkEmailConfirmed(ctx context.Context, id string, at time.Time) error {
	filter := bson.M{"_id": id, "email_confirmed_at": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"email_confirmed_at": at, "updated_at": at}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// either already confirmed or missing
		if _, err := r.GetIdentityByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ClaimPendingIdentity only matches identities that are still pending. An identity confirmed
// in the meantime is left as it is.
func (r *MongoIdentityRepository) ClaimPendingIdentity(ctx context.Context, id string, metadata entity.SignupMetadata, at time.Time) error {
	filter := bson.M{"_id": id, "email_confirmed_at": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{
		"password_hash":      "",
		"metadata":           metadata,
		"email_confirmed_at": at,
		"updated_at":         at,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetIdentityByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoIdentityRepository) findOne(ctx context.Context, filter bson.M) (*entity.Identity, error) {
	var identity entity.Identity
	err := r.collection.FindOne(ctx, filter).Decode(&identity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &identity, nil
}
