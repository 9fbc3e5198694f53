package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/vidtube-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, email, full_name, password_hash, avatar, cover_image,
	refresh_token_hash, watch_history, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
		&user.Avatar, &user.CoverImage, &user.RefreshTokenHash, &user.WatchHistory,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, args ...any) (model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to %s: %w", op, mapError(err))
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.WatchHistory == nil {
		user.WatchHistory = []uuid.UUID{}
	}
	now := time.Now().UTC()

	query := `INSERT INTO users (id, username, email, full_name, password_hash, avatar, cover_image,
				refresh_token_hash, watch_history, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			  RETURNING ` + userColumns

	return r.getOne(ctx, "create user", query,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash, user.Avatar, user.CoverImage,
		user.RefreshTokenHash, user.WatchHistory, now,
	)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "get user by id", query, id)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, len(ids))
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, "get user by username", query, username)
}

// GetByUsernameOrEmail matches either identifier. Empty identifiers never match.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
			  LIMIT 1`
	return r.getOne(ctx, "get user by username or email", query, username, email)
}

func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	query := `UPDATE users SET refresh_token_hash = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, "set refresh token", model.ErrNotFound, query, id, hash)
}

// SwapRefreshTokenHash replaces the digest only while it still equals oldHash.
func (r *UserRepository) SwapRefreshTokenHash(ctx context.Context, id uuid.UUID, oldHash, newHash []byte) error {
	query := `UPDATE users SET refresh_token_hash = $3, updated_at = now()
			  WHERE id = $1 AND refresh_token_hash = $2`
	return r.exec(ctx, "swap refresh token", model.ErrInvalidToken, query, id, oldHash, newHash)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, "update password", model.ErrNotFound, query, id, passwordHash)
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id uuid.UUID, params model.UpdateAccountParams) (model.User, error) {
	query := `UPDATE users SET
				full_name = COALESCE($2, full_name),
				email = COALESCE($3, email),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns
	return r.getOne(ctx, "update account", query, id, params.FullName, params.Email)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (model.User, error) {
	query := `UPDATE users SET avatar = $2, updated_at = now() WHERE id = $1 RETURNING ` + userColumns
	return r.getOne(ctx, "update avatar", query, id, url)
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (model.User, error) {
	query := `UPDATE users SET cover_image = $2, updated_at = now() WHERE id = $1 RETURNING ` + userColumns
	return r.getOne(ctx, "update cover image", query, id, url)
}

func (r *UserRepository) exec(ctx context.Context, op string, noRows error, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return noRows
	}
	return nil
}
