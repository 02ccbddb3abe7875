// Package bookmarks maintains the many-to-many bookmark relation between
// users and posts and serves the bookmarked-posts view. The mutation
// surface mirrors follow: a single toggle-to-state operation whose
// repetition never changes the outcome.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"microblog/internal/events"
)

var (
	// ErrInvalidInput is returned for empty identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound is returned when the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when the post does not exist.
	ErrPostNotFound = errors.New("post not found")
)

type Service interface {
	// SetBookmark moves the (user, post) bookmark to the requested state.
	SetBookmark(ctx context.Context, userID, postID string, bookmark bool) error
	// GetBookmarkedPosts returns the user's bookmarked posts, newest
	// bookmark first. An empty slice is a valid result, not an error.
	GetBookmarkedPosts(ctx context.Context, userID string) ([]Post, error)
}

type service struct {
	repo      *Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates the bookmarks service. publisher may be nil, in
// which case change events are not emitted.
func NewService(repo *Repository, publisher events.Publisher, logger *slog.Logger) Service {
	return &service{repo: repo, publisher: publisher, logger: logger}
}

func (s *service) SetBookmark(ctx context.Context, userID, postID string, bookmark bool) error {
	if userID == "" || postID == "" {
		return ErrInvalidInput
	}

	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}

	if bookmark {
		err = s.repo.CreateBookmark(ctx, userID, postID)
	} else {
		_, err = s.repo.DeleteBookmark(ctx, userID, postID)
	}
	if err != nil {
		return err
	}

	s.publishChange(userID, postID, bookmark)
	return nil
}

func (s *service) GetBookmarkedPosts(ctx context.Context, userID string) ([]Post, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	return s.repo.ListBookmarkedPosts(ctx, userID)
}

// publishChange emits a bookmark event. The mutation has already
// committed; a publish failure is logged, never surfaced.
func (s *service) publishChange(userID, postID string, bookmark bool) {
	if s.publisher == nil {
		return
	}
	evt := events.BookmarkChanged{
		UserID:     userID,
		PostID:     postID,
		Bookmarked: bookmark,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishBookmarkChanged(evt); err != nil {
		s.logger.Warn("publish bookmark event",
			"user_id", userID,
			"post_id", postID,
			"error", err)
	}
}
