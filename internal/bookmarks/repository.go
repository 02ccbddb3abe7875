package bookmarks

import (
	"context"
	"fmt"

	"microblog/internal/database"
)

// Repository owns all SQL against the bookmarks relation and its joins.
// Every statement is parameterized; mutations touch at most one row.
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

// PostExists reports whether a post row exists.
func (r *Repository) PostExists(ctx context.Context, postID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = $1)
	`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post %s: %w", postID, err)
	}
	return exists, nil
}

// CreateBookmark inserts the pair if it is missing. The primary key on
// (user_id, post_id) absorbs concurrent duplicates.
func (r *Repository) CreateBookmark(ctx context.Context, userID, postID string) error {
	const q = `
		INSERT INTO bookmarks (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, q, userID, postID); err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

// DeleteBookmark removes the pair if present. Zero rows is not an error.
func (r *Repository) DeleteBookmark(ctx context.Context, userID, postID string) (int64, error) {
	const q = `DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`
	res, err := r.db.Exec(ctx, q, userID, postID)
	if err != nil {
		return 0, fmt.Errorf("delete bookmark: %w", err)
	}
	return res.RowsAffected(), nil
}

// ListBookmarkedPosts returns the posts bookmarked by userID with author
// display fields and counters from the likes/comments tables. Ordered by
// bookmark creation time, newest first; post_id breaks ties.
func (r *Repository) ListBookmarkedPosts(ctx context.Context, userID string) ([]Post, error) {
	const q = `
		SELECT p.post_id, p.user_id, u.username, u.display_name,
		       p.content, p.created_at, b.created_at,
		       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id),
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id),
		       EXISTS (
		           SELECT 1 FROM likes l
		           WHERE l.post_id = p.post_id AND l.user_id = $1
		       )
		FROM bookmarks b
		JOIN posts p ON p.post_id = b.post_id
		JOIN users u ON u.user_id = p.user_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, p.post_id DESC
	`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query bookmarked posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		err := rows.Scan(
			&p.PostID,
			&p.AuthorID,
			&p.AuthorUsername,
			&p.AuthorDisplayName,
			&p.Content,
			&p.CreatedAt,
			&p.BookmarkedAt,
			&p.LikesCount,
			&p.CommentsCount,
			&p.IsLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bookmarked post: %w", err)
		}
		// Rows come from the viewer's own bookmarks.
		p.IsBookmarked = true
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarked posts: %w", err)
	}

	return posts, nil
}
