package people

import (
	"context"
	"fmt"

	"microblog/internal/database"
)

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

// ListFollowable returns every user except the viewer, each annotated with
// the viewer's current follow state via a left join against follows.
// Ordered by username then user_id so the sequence is stable across calls
// when the data is unchanged.
func (r *Repository) ListFollowable(ctx context.Context, viewerID string) ([]FollowableUser, error) {
	const q = `
		SELECT u.user_id, u.username, u.display_name,
		       COALESCE(u.avatar_key, ''),
		       f.follower_id IS NOT NULL AS is_followed
		FROM users u
		LEFT JOIN follows f
		  ON f.followee_id = u.user_id AND f.follower_id = $1
		WHERE u.user_id <> $1
		ORDER BY u.username, u.user_id
	`

	rows, err := r.db.Query(ctx, q, viewerID)
	if err != nil {
		return nil, fmt.Errorf("query followable users: %w", err)
	}
	defer rows.Close()

	users := []FollowableUser{}
	for rows.Next() {
		var u FollowableUser
		if err := rows.Scan(&u.UserID, &u.Username, &u.DisplayName, &u.AvatarKey, &u.IsFollowed); err != nil {
			return nil, fmt.Errorf("scan followable user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate followable users: %w", err)
	}

	return users, nil
}
