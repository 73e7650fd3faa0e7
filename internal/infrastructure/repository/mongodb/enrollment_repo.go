package mongodb

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EnrollmentRepository struct {
	collection *mongo.Collection
}

var _ contract.IEnrollmentRepository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository(collection *mongo.Collection) *EnrollmentRepository {
	return &EnrollmentRepository{collection: collection}
}

// CreateEnrollmentIfAbsent relies on the unique (user_id, course_id) index.
func (r *EnrollmentRepository) CreateEnrollmentIfAbsent(ctx context.Context, enrollment *entity.Enrollment) (*entity.Enrollment, bool, error) {
	_, err := r.collection.InsertOne(ctx, enrollment)
	if err == nil {
		return enrollment, true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false, err
	}
	existing, err := r.GetEnrollment(ctx, enrollment.UserID, enrollment.CourseID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *EnrollmentRepository) GetEnrollment(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&enrollment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListEnrollmentsByUser(ctx context.Context, userID string) ([]entity.Enrollment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	enrollments := []entity.Enrollment{}
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) DeleteEnrollmentsByCourse(ctx context.Context, courseID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"course_id": courseID})
	return err
}
