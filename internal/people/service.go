// Package people serves the "who can I follow" view: every other user,
// annotated with the viewer's current follow state. The query always runs
// against the store, so a follow performed a moment ago is visible in the
// very next call.
package people

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"microblog/internal/storage"
)

var (
	// ErrInvalidInput is returned for an empty viewer ID.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound is returned when the viewer does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Presigned avatar links outlive any sane page view.
const avatarURLTTL = 15 * time.Minute

type Service interface {
	GetFollowableUsers(ctx context.Context, viewerID string) ([]FollowableUser, error)
}

type service struct {
	repo    *Repository
	avatars storage.Service
	logger  *slog.Logger
}

// NewService creates the people service. avatars may be nil; users are
// then served without avatar links.
func NewService(repo *Repository, avatars storage.Service, logger *slog.Logger) Service {
	return &service{repo: repo, avatars: avatars, logger: logger}
}

func (s *service) GetFollowableUsers(ctx context.Context, viewerID string) ([]FollowableUser, error) {
	if viewerID == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.repo.UserExists(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, viewerID)
	}

	users, err := s.repo.ListFollowable(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	s.resolveAvatars(ctx, users)
	return users, nil
}

// resolveAvatars swaps stored object keys for presigned URLs. A failed
// presign degrades that user to no avatar instead of failing the list.
func (s *service) resolveAvatars(ctx context.Context, users []FollowableUser) {
	if s.avatars == nil {
		return
	}
	for i := range users {
		if users[i].AvatarKey == "" {
			continue
		}
		url, err := s.avatars.AvatarURL(ctx, users[i].AvatarKey, avatarURLTTL)
		if err != nil {
			s.logger.Warn("presign avatar",
				"user_id", users[i].UserID,
				"error", err)
			continue
		}
		users[i].AvatarURL = url
	}
}
