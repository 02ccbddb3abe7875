package bookmarks

import "time"

// Bookmark is a saved reference from a user to a post, independent of
// authorship. At most one bookmark exists per (user, post) pair.
type Bookmark struct {
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is the display shape of a bookmarked post: content plus author
// display fields and engagement counters from the statistics tables.
type Post struct {
	PostID            string    `json:"post_id"`
	AuthorID          string    `json:"author_id"`
	AuthorUsername    string    `json:"author_username"`
	AuthorDisplayName string    `json:"author_display_name"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"created_at"`
	BookmarkedAt      time.Time `json:"bookmarked_at"`
	LikesCount        int64     `json:"likes_count"`
	CommentsCount     int64     `json:"comments_count"`
	IsLiked           bool      `json:"is_liked"`
	IsBookmarked      bool      `json:"is_bookmarked"`
}

// ToggleRequest carries the desired end state of the bookmark, not a
// delta. Repeating the same request is always safe.
type ToggleRequest struct {
	Bookmark *bool `json:"bookmark" binding:"required"`
}

type ToggleResponse struct {
	PostID     string `json:"post_id"`
	Bookmarked bool   `json:"bookmarked"`
}
