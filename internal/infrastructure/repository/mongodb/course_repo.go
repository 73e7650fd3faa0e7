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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourseRepository represents the MongoDB implementation of ICourseRepository.
type CourseRepository struct {
	collection *mongo.Collection
}

var _ contract.ICourseRepository = (*CourseRepository)(nil)

func NewCourseRepository(collection *mongo.Collection) *CourseRepository {
	return &CourseRepository{collection: collection}
}

func (r *CourseRepository) CreateCourse(ctx context.Context, course *entity.Course) error {
	if _, err := r.collection.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*entity.Course, error) {
	var course entity.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve course %s: %w", id, err)
	}
	return &course, nil
}

// UpdateCourse replaces the mutable fields of the stored course.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *entity.Course) error {
	course.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":         course.Title,
		"description":   course.Description,
		"price_cents":   course.PriceCents,
		"thumbnail_key": course.ThumbnailKey,
		"video_key":     course.VideoKey,
		"state":         course.State,
		"published_at":  course.PublishedAt,
		"updated_at":    course.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": course.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update course %s: %w", course.ID, err)
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) DeleteCourse(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) ListPublishedCourses(ctx context.Context, page, pageSize int) ([]entity.Course, int64, error) {
	filter := bson.M{"state": entity.CourseStatePublished}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	courses, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) ListCoursesByCreator(ctx context.Context, creatorID string) ([]entity.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"creator_id": creatorID}, opts)
}

func (r *CourseRepository) HasPublishedCourseByCreator(ctx context.Context, creatorID string) (bool, error) {
	filter := bson.M{"creator_id": creatorID, "state": entity.CourseStatePublished}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.Course, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := []entity.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
