package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/vidtube-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{col: conn.collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := newUserDocument(user)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", mapError(err))
	}

	return doc.toModel()
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.findOne(ctx, "get user by id", bson.M{"_id": id.String()})
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		u, err := d.toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findOne(ctx, "get user by username", bson.M{"username": username})
}

// GetByUsernameOrEmail matches either identifier. Empty identifiers never match.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	filter := usernameOrEmailFilter(username, email)
	if filter == nil {
		return model.User{}, model.ErrNotFound
	}
	return r.findOne(ctx, "get user by username or email", filter)
}

func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	update := bson.M{"$set": bson.M{"refreshTokenHash": hash, "updatedAt": time.Now().UTC()}}
	if hash == nil {
		update = bson.M{
			"$unset": bson.M{"refreshTokenHash": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	}

	return r.updateOne(ctx, "set refresh token", model.ErrNotFound, bson.M{"_id": id.String()}, update)
}

// SwapRefreshTokenHash replaces the digest only while it still equals oldHash.
func (r *UserRepository) SwapRefreshTokenHash(ctx context.Context, id uuid.UUID, oldHash, newHash []byte) error {
	filter := bson.M{"_id": id.String(), "refreshTokenHash": oldHash}
	update := bson.M{"$set": bson.M{"refreshTokenHash": newHash, "updatedAt": time.Now().UTC()}}
	return r.updateOne(ctx, "swap refresh token", model.ErrInvalidToken, filter, update)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	update := bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()}}
	return r.updateOne(ctx, "update password", model.ErrNotFound, bson.M{"_id": id.String()}, update)
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id uuid.UUID, params model.UpdateAccountParams) (model.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if params.FullName != nil {
		set["fullname"] = *params.FullName
	}
	if params.Email != nil {
		set["email"] = *params.Email
	}
	return r.findOneAndSet(ctx, "update account", id, set)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (model.User, error) {
	return r.findOneAndSet(ctx, "update avatar", id, bson.M{"avatar": url, "updatedAt": time.Now().UTC()})
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (model.User, error) {
	return r.findOneAndSet(ctx, "update cover image", id, bson.M{"coverImage": url, "updatedAt": time.Now().UTC()})
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter any) (model.User, error) {
	var doc userDocument
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	return doc.toModel()
}

func (r *UserRepository) findOneAndSet(ctx context.Context, op string, id uuid.UUID, set bson.M) (model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to %s: %w", op, mapError(err))
	}
	return doc.toModel()
}

func (r *UserRepository) updateOne(ctx context.Context, op string, noMatch error, filter, update any) error {
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, mapError(err))
	}
	if res.MatchedCount == 0 {
		return noMatch
	}
	return nil
}

func usernameOrEmailFilter(username, email string) bson.M {
	var or bson.A
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil
	}
	return bson.M{"$or": or}
}

func mapError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%v: %w", err, model.ErrConflict)
	}
	return err
}
