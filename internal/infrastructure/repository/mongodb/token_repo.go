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

// ---------- DTO layer ------------------
type tokenDTO struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TokenType string    `bson:"token_type"`
	TokenHash string    `bson:"token_hash"`
	CodeHash  string    `bson:"code_hash,omitempty"`
	Verifier  string    `bson:"verifier,omitempty"`
	Failed    int       `bson:"failed_attempts"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoke    bool      `bson:"revoke"`
}

func (t *tokenDTO) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: entity.TokenType(t.TokenType),
		Verifier:  t.Verifier,
		TokenHash: t.TokenHash,
		CodeHash:  t.CodeHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,

		FailedAttempts: t.Failed,
	}
}

func FromTokenEntityToDTO(t *entity.Token) *tokenDTO {
	return &tokenDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: string(t.TokenType),
		Verifier:  t.Verifier,
		TokenHash: t.TokenHash,
		CodeHash:  t.CodeHash,
		Failed:    t.FailedAttempts,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

// ---------------------------------------

type TokenRepository struct {
	Collection *mongo.Collection
}

// check in compile time if TokenRepository implements ITokenRepository
var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(colln *mongo.Collection) *TokenRepository {
	return &TokenRepository{
		Collection: colln,
	}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	dto := FromTokenEntityToDTO(token)
	_, err := r.Collection.InsertOne(ctx, dto)
	return err
}

// GetTokenByUserID returns the newest unrevoked token of the given type.
func (r *TokenRepository) GetTokenByUserID(ctx context.Context, userID string, tokenType entity.TokenType) (*entity.Token, error) {
	filter := bson.M{"user_id": userID, "token_type": string(tokenType), "revoke": false}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// UpdateToken updates the token hash and expiry
func (r *TokenRepository) UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error {
	filter := bson.M{"_id": tokenID}
	update := bson.M{"$set": bson.M{"token_hash": tokenHash, "expires_at": expiry}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *TokenRepository) GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error) {
	return r.findOne(ctx, bson.M{"verifier": verifier})
}

// RevokeToken marks a token as revoked by its ID
func (r *TokenRepository) RevokeToken(ctx context.Context, id string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"revoke": true}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to revoke token %v: %w", id, entity.ErrNotFound)
	}

	return nil
}

// RevokeAllTokensForUser revokes every live token of one type for a user.
func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "token_type", Value: string(tokenType)},
		{Key: "revoke", Value: false},
	}
	update := bson.D{
		{Key: "$set", Value: bson.M{"revoke": true}},
	}

	_, err := r.Collection.UpdateMany(ctx, filter, update)
	return err
}

// RecordFailedAttempt atomically bumps failed_attempts and returns the stored count.
func (r *TokenRepository) RecordFailedAttempt(ctx context.Context, id string) (int, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var dto tokenDTO
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"failed_attempts": 1}}, opts).Decode(&dto)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, entity.ErrNotFound
		}
		return 0, err
	}
	return dto.Failed, nil
}

func (r *TokenRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*entity.Token, error) {
	var dto tokenDTO
	err := r.Collection.FindOne(ctx, filter, opts...).Decode(&dto)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return dto.ToEntity(), nil
}
