package database_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"microblog/internal/bookmarks"
	"microblog/internal/follow"
	"microblog/internal/people"
)

const schema = `
	CREATE TABLE users (
		user_id      TEXT PRIMARY KEY,
		username     TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		avatar_key   TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE posts (
		post_id    TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(user_id),
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE follows (
		follower_id TEXT NOT NULL REFERENCES users(user_id),
		followee_id TEXT NOT NULL REFERENCES users(user_id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, followee_id),
		CHECK (follower_id <> followee_id)
	);

	CREATE TABLE bookmarks (
		user_id    TEXT NOT NULL REFERENCES users(user_id),
		post_id    TEXT NOT NULL REFERENCES posts(post_id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, post_id)
	);

	CREATE TABLE likes (
		user_id    TEXT NOT NULL REFERENCES users(user_id),
		post_id    TEXT NOT NULL REFERENCES posts(post_id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, post_id)
	);

	CREATE TABLE comments (
		comment_id TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(user_id),
		post_id    TEXT NOT NULL REFERENCES posts(post_id),
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

func startPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	pgc, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("microblog"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgc.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgc.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return pool
}

func seed(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	stmts := []string{
		`INSERT INTO users (user_id, username, display_name) VALUES
			('1', 'alice', 'Alice'),
			('2', 'bob', 'Bob'),
			('3', 'carol', 'Carol')`,
		`INSERT INTO posts (post_id, user_id, content) VALUES
			('7',  '2', 'older post'),
			('10', '2', 'newer post')`,
		`INSERT INTO likes (user_id, post_id) VALUES ('3', '10')`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestRelationshipFlows(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t, ctx)
	seed(t, ctx, pool)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	followSvc := follow.NewService(follow.NewRepository(pool), nil, logger)
	peopleSvc := people.NewService(people.NewRepository(pool), nil, logger)
	bookmarkSvc := bookmarks.NewService(bookmarks.NewRepository(pool), nil, logger)

	t.Run("followable list excludes viewer and starts unfollowed", func(t *testing.T) {
		users, err := peopleSvc.GetFollowableUsers(ctx, "1")
		if err != nil {
			t.Fatalf("get followable users: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("got %d users, want 2", len(users))
		}
		if users[0].Username != "bob" || users[1].Username != "carol" {
			t.Fatalf("unexpected order: %s, %s", users[0].Username, users[1].Username)
		}
		for _, u := range users {
			if u.IsFollowed {
				t.Fatalf("%s should start unfollowed", u.Username)
			}
		}
	})

	t.Run("follow is idempotent and visible immediately", func(t *testing.T) {
		if err := followSvc.SetFollow(ctx, "1", "2", true); err != nil {
			t.Fatalf("follow: %v", err)
		}
		if err := followSvc.SetFollow(ctx, "1", "2", true); err != nil {
			t.Fatalf("repeat follow: %v", err)
		}

		cnt, err := followSvc.FollowersCount(ctx, "2")
		if err != nil {
			t.Fatalf("followers count: %v", err)
		}
		if cnt != 1 {
			t.Fatalf("followers count = %d, want 1 after duplicate follow", cnt)
		}

		users, err := peopleSvc.GetFollowableUsers(ctx, "1")
		if err != nil {
			t.Fatalf("get followable users: %v", err)
		}
		for _, u := range users {
			if u.Username == "bob" && !u.IsFollowed {
				t.Fatal("bob should be marked followed")
			}
			if u.Username == "carol" && u.IsFollowed {
				t.Fatal("carol should not be marked followed")
			}
		}
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		if err := followSvc.SetFollow(ctx, "1", "1", true); !errors.Is(err, follow.ErrSelfFollow) {
			t.Fatalf("expected ErrSelfFollow, got: %v", err)
		}
	})

	t.Run("unfollow is idempotent", func(t *testing.T) {
		if err := followSvc.SetFollow(ctx, "1", "2", false); err != nil {
			t.Fatalf("unfollow: %v", err)
		}
		if err := followSvc.SetFollow(ctx, "1", "2", false); err != nil {
			t.Fatalf("repeat unfollow: %v", err)
		}

		ok, err := followSvc.IsFollowing(ctx, "1", "2")
		if err != nil {
			t.Fatalf("is following: %v", err)
		}
		if ok {
			t.Fatal("edge should be gone")
		}
	})

	t.Run("bookmarks order by bookmark time, newest first", func(t *testing.T) {
		// Explicit timestamps so the order under test is the bookmark
		// time, not the post time.
		if _, err := pool.Exec(ctx, `
			INSERT INTO bookmarks (user_id, post_id, created_at) VALUES
				('3', '10', now() - interval '1 hour'),
				('3', '7',  now())
		`); err != nil {
			t.Fatalf("seed bookmarks: %v", err)
		}

		posts, err := bookmarkSvc.GetBookmarkedPosts(ctx, "3")
		if err != nil {
			t.Fatalf("get bookmarked posts: %v", err)
		}
		if len(posts) != 2 {
			t.Fatalf("got %d posts, want 2", len(posts))
		}
		if posts[0].PostID != "7" || posts[1].PostID != "10" {
			t.Fatalf("unexpected order: %s, %s", posts[0].PostID, posts[1].PostID)
		}
		for _, p := range posts {
			if !p.IsBookmarked {
				t.Fatalf("post %s should be flagged bookmarked", p.PostID)
			}
		}
		if !posts[1].IsLiked || posts[1].LikesCount != 1 {
			t.Fatalf("like state lost on post 10: %+v", posts[1])
		}
	})

	t.Run("duplicate bookmark leaves one row", func(t *testing.T) {
		if err := bookmarkSvc.SetBookmark(ctx, "3", "10", true); err != nil {
			t.Fatalf("repeat bookmark: %v", err)
		}

		var cnt int
		err := pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM bookmarks WHERE user_id = $1 AND post_id = $2`,
			"3", "10").Scan(&cnt)
		if err != nil {
			t.Fatalf("count bookmarks: %v", err)
		}
		if cnt != 1 {
			t.Fatalf("bookmark rows = %d, want 1", cnt)
		}
	})

	t.Run("unbookmark then list", func(t *testing.T) {
		if err := bookmarkSvc.SetBookmark(ctx, "3", "7", false); err != nil {
			t.Fatalf("unbookmark: %v", err)
		}
		if err := bookmarkSvc.SetBookmark(ctx, "3", "7", false); err != nil {
			t.Fatalf("repeat unbookmark: %v", err)
		}

		posts, err := bookmarkSvc.GetBookmarkedPosts(ctx, "3")
		if err != nil {
			t.Fatalf("get bookmarked posts: %v", err)
		}
		if len(posts) != 1 || posts[0].PostID != "10" {
			t.Fatalf("unexpected posts after unbookmark: %+v", posts)
		}
	})

	t.Run("empty bookmark list is not an error", func(t *testing.T) {
		posts, err := bookmarkSvc.GetBookmarkedPosts(ctx, "1")
		if err != nil {
			t.Fatalf("get bookmarked posts: %v", err)
		}
		if posts == nil || len(posts) != 0 {
			t.Fatalf("expected empty slice, got %v", posts)
		}
	})

	t.Run("unknown targets map to not-found", func(t *testing.T) {
		if err := followSvc.SetFollow(ctx, "1", "ghost", true); !errors.Is(err, follow.ErrUserNotFound) {
			t.Fatalf("expected follow.ErrUserNotFound, got: %v", err)
		}
		if err := bookmarkSvc.SetBookmark(ctx, "1", "ghost", true); !errors.Is(err, bookmarks.ErrPostNotFound) {
			t.Fatalf("expected bookmarks.ErrPostNotFound, got: %v", err)
		}
		if _, err := peopleSvc.GetFollowableUsers(ctx, "ghost"); !errors.Is(err, people.ErrUserNotFound) {
			t.Fatalf("expected people.ErrUserNotFound, got: %v", err)
		}
	})
}
