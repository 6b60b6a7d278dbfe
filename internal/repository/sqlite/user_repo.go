package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vedran77/bloglist/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	postIDs, err := json.Marshal(user.Posts)
	if err != nil {
		return fmt.Errorf("encoding post ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, name, password_hash, post_ids, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Username, user.Name, user.PasswordHash, string(postIDs), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash, post_ids, created_at FROM users WHERE id = ?`,
		id.String(),
	))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash, post_ids, created_at FROM users WHERE username = ?`,
		username,
	))
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, name, password_hash, post_ids, created_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var id, postIDs string
		if err := rows.Scan(&id, &u.Username, &u.Name, &u.PasswordHash, &postIDs, &u.CreatedAt); err != nil {
			return nil, err
		}
		if u.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse user id: %w", err)
		}
		if err := json.Unmarshal([]byte(postIDs), &u.Posts); err != nil {
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

	_, err = r.db.ExecContext(ctx,
		`UPDATE users SET post_ids = ? WHERE id = ?`, string(postIDs), userID.String(),
	)
	if err != nil {
		return fmt.Errorf("update post ids: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var id, postIDs string
	err := row.Scan(&id, &u.Username, &u.Name, &u.PasswordHash, &postIDs, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	if err := json.Unmarshal([]byte(postIDs), &u.Posts); err != nil {
		return nil, fmt.Errorf("decoding post ids: %w", err)
	}
	return &u, nil
}
