package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProfileRepository struct {
	collection *mongo.Collection
}

var _ contract.IProfileRepository = (*MongoProfileRepository)(nil)

func NewMongoProfileRepository(collection *mongo.Collection) *MongoProfileRepository {
	return &MongoProfileRepository{collection: collection}
}

// CreateProfileIfAbsent upserts with $setOnInsert so a second confirmation never overwrites
// a profile an admin may already have changed.
func (r *MongoProfileRepository) CreateProfileIfAbsent(ctx context.Context, profile *entity.Profile) (*entity.Profile, bool, error) {
	filter := bson.M{"_id": profile.ID}
	update := bson.M{"$setOnInsert": bson.M{
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"full_name":  profile.FullName,
		"role":       profile.Role,
		"status":     profile.Status,
		"created_at": profile.CreatedAt,
		"updated_at": profile.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return nil, false, err
		}
		// concurrent upsert won the race
		result = &mongo.UpdateResult{}
	}
	stored, err := r.GetProfileByID(ctx, profile.ID)
	if err != nil {
		return nil, false, err
	}
	return stored, result.UpsertedCount == 1, nil
}

func (r *MongoProfileRepository) GetProfileByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *MongoProfileRepository) UpdateNames(ctx context.Context, id, firstName, lastName, fullName string) (*entity.Profile, error) {
	return r.set(ctx, id, bson.M{"first_name": firstName, "last_name": lastName, "full_name": fullName})
}

func (r *MongoProfileRepository) UpdateRole(ctx context.Context, id string, role entity.UserRole) (*entity.Profile, error) {
	return r.set(ctx, id, bson.M{"role": role})
}

func (r *MongoProfileRepository) UpdateStatus(ctx context.Context, id string, status entity.ProfileStatus) (*entity.Profile, error) {
	return r.set(ctx, id, bson.M{"status": status})
}

func (r *MongoProfileRepository) ListProfiles(ctx context.Context, page, pageSize int) ([]entity.Profile, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	profiles := []entity.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *MongoProfileRepository) set(ctx context.Context, id string, fields bson.M) (*entity.Profile, error) {
	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile entity.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
