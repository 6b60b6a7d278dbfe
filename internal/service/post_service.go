package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/bloglist/internal/domain"
	"github.com/vedran77/bloglist/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("post is owned by another user")
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

type CreatePostInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// Create persists a post owned by the given user and appends its id to
// the owner's cached post list. The owner always comes from the
// authenticated identity; any owner in the request body is ignored.
func (s *PostService) Create(ctx context.Context, owner *domain.User, input CreatePostInput) (*domain.Post, error) {
	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}

	post := &domain.Post{
		ID:        uuid.New(),
		Title:     input.Title,
		Author:    input.Author,
		URL:       input.URL,
		Likes:     likes,
		UserID:    owner.ID,
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	// Advisory cache update; the post row is already the source of truth.
	if err := s.userRepo.AppendPost(ctx, owner.ID, post.ID); err != nil {
		return nil, fmt.Errorf("appending post reference: %w", err)
	}

	post.User = ownerOf(owner)
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[uuid.UUID]*domain.PostOwner, len(users))
	for i := range users {
		owners[users[i].ID] = ownerOf(&users[i])
	}

	for i := range posts {
		posts[i].User = owners[posts[i].UserID]
	}
	return posts, nil
}

// Update replaces the post's client-editable fields. Only the owner may
// update; the owner reference itself never changes.
func (s *PostService) Update(ctx context.Context, owner *domain.User, postID uuid.UUID, input CreatePostInput) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != owner.ID {
		return nil, ErrNotPostOwner
	}

	post.Title = input.Title
	post.Author = input.Author
	post.URL = input.URL
	if input.Likes != nil {
		post.Likes = *input.Likes
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	post.User = ownerOf(owner)
	return post, nil
}

// Delete removes the post and retracts its id from the owner's cached
// post list. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, owner *domain.User, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != owner.ID {
		return ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	if err := s.userRepo.RemovePost(ctx, owner.ID, postID); err != nil {
		return fmt.Errorf("removing post reference: %w", err)
	}

	return nil
}

func ownerOf(user *domain.User) *domain.PostOwner {
	return &domain.PostOwner{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
}
