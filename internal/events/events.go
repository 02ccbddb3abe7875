// Package events publishes relationship change notifications to Kafka.
// Downstream consumers (notification fan-out, counters, search indexing)
// react to follow and bookmark state changes without coupling to the
// services that perform them.
package events

import "time"

// FollowChanged records the desired end state of a follow edge. Carrying
// the state instead of a delta keeps consumers idempotent under replays.
type FollowChanged struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	Following  bool      `json:"following"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookmarkChanged records the desired end state of a bookmark pair.
type BookmarkChanged struct {
	UserID     string    `json:"user_id"`
	PostID     string    `json:"post_id"`
	Bookmarked bool      `json:"bookmarked"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is the event-publishing surface services depend on. Services
// treat a nil Publisher as "publishing disabled".
type Publisher interface {
	PublishFollowChanged(event FollowChanged) error
	PublishBookmarkChanged(event BookmarkChanged) error
}
