package follow

import (
	"context"
	"fmt"

	"microblog/internal/database"
)

// Repository owns all SQL against the follows relation. Every statement is
// parameterized and touches at most one relationship row.
type Repository struct {
	db database.Querier
}

func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// UserExists reports whether a user row exists.
func (r *Repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user %s: %w", userID, err)
	}
	return exists, nil
}

// CreateEdge inserts the edge if it is missing. The primary key on
// (follower_id, followee_id) makes concurrent inserts converge on a single
// row, so a duplicate insert is a successful no-op.
func (r *Repository) CreateEdge(ctx context.Context, followerID, followeeID string) error {
	const q = `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, q, followerID, followeeID); err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// DeleteEdge removes the edge if present and reports how many rows went
// away. Zero is not an error: removing an absent edge is a no-op.
func (r *Repository) DeleteEdge(ctx context.Context, followerID, followeeID string) (int64, error) {
	const q = `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	res, err := r.db.Exec(ctx, q, followerID, followeeID)
	if err != nil {
		return 0, fmt.Errorf("delete follow: %w", err)
	}
	return res.RowsAffected(), nil
}

// EdgeExists reports whether follower currently follows followee.
func (r *Repository) EdgeExists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2
		)
	`, followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

// CountFollowers counts edges pointing at userID.
func (r *Repository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM follows WHERE followee_id = $1
	`, userID).Scan(&cnt)
	if err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}
	return cnt, nil
}

// CountFollowing counts edges originating from userID.
func (r *Repository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM follows WHERE follower_id = $1
	`, userID).Scan(&cnt)
	if err != nil {
		return 0, fmt.Errorf("count following: %w", err)
	}
	return cnt, nil
}
