package entity

import "time"

// Comment belongs to a video and is mutable only by its author.
type Comment struct {
	ID        string       `json:"_id"`
	VideoID   string       `json:"video"`
	OwnerID   string       `json:"-"`
	Owner     OwnerSummary `json:"owner"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Post is a channel community post.
type Post struct {
	ID        string       `json:"_id"`
	OwnerID   string       `json:"-"`
	Owner     OwnerSummary `json:"owner"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// LikeTarget names the entity kind a like points at.
type LikeTarget string

const (
	LikeVideo   LikeTarget = "video"
	LikeComment LikeTarget = "comment"
	LikePost    LikeTarget = "post"
)

// Like is a join record; presence means "liked". (target, user) is unique.
type Like struct {
	ID        string     `json:"_id"`
	Target    LikeTarget `json:"-"`
	TargetID  string     `json:"-"`
	LikedBy   string     `json:"likedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Playlist holds an ordered, deduplicated list of video references.
type Playlist struct {
	ID          string       `json:"_id"`
	OwnerID     string       `json:"-"`
	Owner       OwnerSummary `json:"owner"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Videos      []Video      `json:"videos"`
	TotalVideos int          `json:"totalVideos"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Subscription links a subscriber to a channel (both users).
type Subscription struct {
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelStats is the dashboard aggregate for one channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
