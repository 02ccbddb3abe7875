package people

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func expectViewerExists(mock pgxmock.PgxPoolIface, viewerID string, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users`).
		WithArgs(viewerID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func followableColumns() []string {
	return []string{"user_id", "username", "display_name", "avatar_key", "is_followed"}
}

func TestGetFollowableUsersAnnotatesFollowState(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectViewerExists(mock, "1", true)
	mock.ExpectQuery(`LEFT JOIN follows`).
		WithArgs("1").
		WillReturnRows(pgxmock.NewRows(followableColumns()).
			AddRow("2", "bob", "Bob", "", true).
			AddRow("3", "carol", "Carol", "", false))

	svc := NewService(NewRepository(mock), nil, newTestLogger())

	users, err := svc.GetFollowableUsers(context.Background(), "1")
	if err != nil {
		t.Fatalf("get followable users: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Username != "bob" || users[1].Username != "carol" {
		t.Fatalf("unexpected order: %s, %s", users[0].Username, users[1].Username)
	}
	if !users[0].IsFollowed {
		t.Fatal("bob should be marked as followed")
	}
	if users[1].IsFollowed {
		t.Fatal("carol should not be marked as followed")
	}
	for _, u := range users {
		if u.UserID == "1" {
			t.Fatal("viewer must not appear in their own list")
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetFollowableUsersEmptyList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectViewerExists(mock, "1", true)
	mock.ExpectQuery(`LEFT JOIN follows`).
		WithArgs("1").
		WillReturnRows(pgxmock.NewRows(followableColumns()))

	svc := NewService(NewRepository(mock), nil, newTestLogger())

	users, err := svc.GetFollowableUsers(context.Background(), "1")
	if err != nil {
		t.Fatalf("empty result must not be an error, got: %v", err)
	}
	if users == nil {
		t.Fatal("expected an empty slice, not nil")
	}
	if len(users) != 0 {
		t.Fatalf("got %d users, want 0", len(users))
	}
}

func TestGetFollowableUsersUnknownViewer(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectViewerExists(mock, "ghost", false)

	svc := NewService(NewRepository(mock), nil, newTestLogger())

	_, err = svc.GetFollowableUsers(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestGetFollowableUsersEmptyViewer(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService(NewRepository(mock), nil, newTestLogger())

	_, err = svc.GetFollowableUsers(context.Background(), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got: %v", err)
	}
}

// stubAvatars presigns deterministically and fails on demand.
type stubAvatars struct {
	failKey string
}

func (s *stubAvatars) AvatarURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if key == s.failKey {
		return "", errors.New("presign failed")
	}
	return "https://cdn.example.test/" + key, nil
}

func (s *stubAvatars) Health(context.Context) error {
	return nil
}

func TestGetFollowableUsersResolvesAvatars(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectViewerExists(mock, "1", true)
	mock.ExpectQuery(`LEFT JOIN follows`).
		WithArgs("1").
		WillReturnRows(pgxmock.NewRows(followableColumns()).
			AddRow("2", "bob", "Bob", "avatars/bob.png", false).
			AddRow("3", "carol", "Carol", "avatars/broken.png", false).
			AddRow("4", "dave", "Dave", "", false))

	svc := NewService(NewRepository(mock), &stubAvatars{failKey: "avatars/broken.png"}, newTestLogger())

	users, err := svc.GetFollowableUsers(context.Background(), "1")
	if err != nil {
		t.Fatalf("get followable users: %v", err)
	}

	if users[0].AvatarURL != "https://cdn.example.test/avatars/bob.png" {
		t.Fatalf("bob avatar url = %q", users[0].AvatarURL)
	}
	// A failed presign degrades that user only.
	if users[1].AvatarURL != "" {
		t.Fatalf("carol avatar url should be empty, got %q", users[1].AvatarURL)
	}
	if users[2].AvatarURL != "" {
		t.Fatalf("dave has no avatar, url should be empty, got %q", users[2].AvatarURL)
	}
}
