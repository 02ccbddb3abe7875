// Package follow maintains the directed follow graph between users.
// The mutation surface is a single toggle-to-state operation: callers name
// the end state they want, and repeating a call never changes the outcome.
package follow

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
	// ErrSelfFollow is returned when a user targets themselves. The
	// message is user-facing.
	ErrSelfFollow = errors.New("you cannot follow yourself")
	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

type Service interface {
	// SetFollow moves the follower->target edge to the requested state.
	SetFollow(ctx context.Context, followerID, targetID string, follow bool) error
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	FollowersCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo      *Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates the follow service. publisher may be nil, in which
// case change events are not emitted.
func NewService(repo *Repository, publisher events.Publisher, logger *slog.Logger) Service {
	return &service{repo: repo, publisher: publisher, logger: logger}
}

func (s *service) SetFollow(ctx context.Context, followerID, targetID string, follow bool) error {
	if followerID == "" || targetID == "" {
		return ErrInvalidInput
	}
	if followerID == targetID {
		return ErrSelfFollow
	}

	exists, err := s.repo.UserExists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUserNotFound, targetID)
	}

	if follow {
		err = s.repo.CreateEdge(ctx, followerID, targetID)
	} else {
		_, err = s.repo.DeleteEdge(ctx, followerID, targetID)
	}
	if err != nil {
		return err
	}

	s.publishChange(followerID, targetID, follow)
	return nil
}

func (s *service) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == "" || targetID == "" {
		return false, ErrInvalidInput
	}
	return s.repo.EdgeExists(ctx, followerID, targetID)
}

func (s *service) FollowersCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountFollowers(ctx, userID)
}

func (s *service) FollowingCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountFollowing(ctx, userID)
}

// publishChange emits a follow event. The mutation has already committed;
// a publish failure is logged and never turns the call into an error.
func (s *service) publishChange(followerID, targetID string, follow bool) {
	if s.publisher == nil {
		return
	}
	evt := events.FollowChanged{
		FollowerID: followerID,
		FolloweeID: targetID,
		Following:  follow,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishFollowChanged(evt); err != nil {
		s.logger.Warn("publish follow event",
			"follower_id", followerID,
			"followee_id", targetID,
			"error", err)
	}
}
