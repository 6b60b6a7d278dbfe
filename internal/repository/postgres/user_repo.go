package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/bloglist/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	postIDs, err := json.Marshal(user.Posts)
	if err != nil {
		return fmt.Errorf("encoding post ids: %w", err)
	}

	query := `
		INSERT INTO users (id, username, name, password_hash, post_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Name, user.PasswordHash, postIDs, user.CreatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, name, password_hash, post_ids, created_at FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, name, password_hash, post_ids, created_at FROM users WHERE username = $1", username)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, username, name, password_hash, post_ids, created_at FROM users ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var postIDs []byte
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &postIDs, &u.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(postIDs, &u.Posts); err != nil {
			return nil, fmt.Errorf("decoding post ids: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) AppendPost(ctx context.Context, userID, postID uuid.UUID) error {
	return r.updatePosts(ctx, userID, func(posts []uuid.UUID) []uuid.UUID {
		return append(posts, postID)
	})
}

func (r *UserRepo) RemovePost(ctx context.Context, userID, postID uuid.UUID) error {
	return r.updatePosts(ctx, userID, func(posts []uuid.UUID) []uuid.UUID {
		kept := posts[:0]
		for _, id := range posts {
			if id != postID {
				kept = append(kept, id)
			}
		}
		return kept
	})
}

func (r *UserRepo) updatePosts(ctx context.Context, userID uuid.UUID, apply func([]uuid.UUID) []uuid.UUID) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", userID)
	}

	postIDs, err := json.Marshal(apply(user.Posts))
	if err != nil {
		return fmt.Errorf("encoding post ids: %w", err)
	}

	_, err = r.pool.Exec(ctx, `UPDATE users SET post_ids = $1 WHERE id = $2`, postIDs, userID)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var postIDs []byte
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Name, &u.PasswordHash, &postIDs, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(postIDs, &u.Posts); err != nil {
		return nil, fmt.Errorf("decoding post ids: %w", err)
	}
	return &u, nil
}
