package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// userRepository implements UserRepository over a MongoDB collection
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Mongo) UserRepository {
	return &userRepository{coll: db.DB.Collection(usersCollection)}
}

// EnsureIndexes creates the uniqueness constraints the account-linking rules
// rely on: email is globally unique, firebase_uid is unique where present.
func EnsureIndexes(ctx context.Context, db *database.Mongo) error {
	coll := db.DB.Collection(usersCollection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "firebase_uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "reset_password_token_hash", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "verification_token_hash", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}

// Create inserts a new user record
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, fmt.Sprintf("user with id %s", id))
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, fmt.Sprintf("user with email %s", email))
}

// GetByFirebaseUID retrieves a user by its external-identity reference
func (r *userRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": uid}, "user with firebase uid")
}

// GetByResetTokenHash retrieves a user whose stored reset-token hash matches
// and whose expiry is still in the future.
func (r *userRepository) GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	filter := bson.M{
		"reset_password_token_hash": tokenHash,
		"reset_password_expires":    bson.M{"$gt": now},
	}
	return r.findOne(ctx, filter, "user with valid reset token")
}

// GetByVerificationTokenHash retrieves a user by verification token hash
func (r *userRepository) GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"verification_token_hash": tokenHash}, "user with verification token")
}

// List retrieves all users
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// Update replaces the stored record and bumps updated_at
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err, user.Email)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID, ErrNotFound)
	}

	return nil
}

// UpdateStats applies only the stat fields present in the patch and returns
// the updated record.
func (r *userRepository) UpdateStats(ctx context.Context, id string, patch domain.StatsPatch) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if patch.Level != nil {
		set["stats.level"] = *patch.Level
	}
	if patch.XP != nil {
		set["stats.xp"] = *patch.XP
	}
	if patch.GamesPlayed != nil {
		set["stats.games_played"] = *patch.GamesPlayed
	}
	if patch.CurrentStreak != nil {
		set["stats.current_streak"] = *patch.CurrentStreak
	}
	if patch.WinRate != nil {
		set["stats.win_rate"] = *patch.WinRate
	}
	if patch.TotalPoints != nil {
		set["stats.total_points"] = *patch.TotalPoints
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	user := &domain.User{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user stats: %w", err)
	}

	return user, nil
}

// Delete removes a user record; deleting an absent id is not an error
func (r *userRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, what string) (*domain.User, error) {
	user := &domain.User{}

	err := r.coll.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s not found: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}

	return user, nil
}

// duplicateKeyError maps a Mongo duplicate-key error onto the sentinel for
// the violated index.
func duplicateKeyError(err error, email string) error {
	if strings.Contains(err.Error(), "firebase_uid") {
		return fmt.Errorf("firebase uid already linked: %w", ErrDuplicateFirebaseUID)
	}
	return fmt.Errorf("user with email %s already exists: %w", email, ErrDuplicateEmail)
}
