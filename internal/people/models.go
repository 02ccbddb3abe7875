package people

// FollowableUser is a user row annotated, per viewer, with whether the
// viewer already follows them. Computed per query, never persisted.
type FollowableUser struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	IsFollowed  bool   `json:"is_followed"`

	// AvatarKey is the raw object key; the service resolves it to a
	// presigned AvatarURL before the row leaves the API.
	AvatarKey string `json:"-"`
}
