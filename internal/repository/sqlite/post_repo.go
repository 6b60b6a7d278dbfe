package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vedran77/bloglist/internal/domain"
)

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, author, url, likes, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.ID.String(), post.Title, post.Author, post.URL, post.Likes, post.UserID.String(), post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, author, url, likes, user_id, created_at FROM posts WHERE id = ?`,
		id.String(),
	)

	var p domain.Post
	var postID, userID string
	err := row.Scan(&postID, &p.Title, &p.Author, &p.URL, &p.Likes, &userID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.ID, err = uuid.Parse(postID); err != nil {
		return nil, fmt.Errorf("parse post id: %w", err)
	}
	if p.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	return &p, nil
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, author, url, likes, user_id, created_at FROM posts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var postID, userID string
		if err := rows.Scan(&postID, &p.Title, &p.Author, &p.URL, &p.Likes, &userID, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.ID, err = uuid.Parse(postID); err != nil {
			return nil, fmt.Errorf("parse post id: %w", err)
		}
		if p.UserID, err = uuid.Parse(userID); err != nil {
			return nil, fmt.Errorf("parse owner id: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, post *domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, author = ?, url = ?, likes = ? WHERE id = ?`,
		post.Title, post.Author, post.URL, post.Likes, post.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
