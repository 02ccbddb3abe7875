package follow

import "time"

// Follow is a directed edge in the follow graph: the follower observes the
// followee's content. At most one edge exists per ordered pair.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleRequest carries the desired end state of the edge, not a delta.
// Repeating the same request is always safe.
type ToggleRequest struct {
	Follow *bool `json:"follow" binding:"required"`
}

type ToggleResponse struct {
	UserID    string `json:"user_id"`
	Following bool   `json:"following"`
}

type CountResponse struct {
	UserID string `json:"user_id"`
	Count  int64  `json:"count"`
}

type FollowingResponse struct {
	UserID    string `json:"user_id"`
	Following bool   `json:"following"`
}
