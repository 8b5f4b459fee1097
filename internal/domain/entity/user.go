package entity

import "time"

// User is the aggregate root for the channel/account domain.
// Password is stored as a bcrypt hash; RefreshToken holds the single active
// refresh token ("" when logged out) used for one-active-session revocation.
type User struct {
	ID            string    `json:"_id"`
	UserName      string    `json:"userName"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	RefreshToken  string    `json:"-"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerSummary is the denormalized owner projection embedded in video,
// comment, post, and playlist reads.
type OwnerSummary struct {
	ID        string `json:"_id"`
	UserName  string `json:"userName"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

func (u *User) Summary() OwnerSummary {
	return OwnerSummary{ID: u.ID, UserName: u.UserName, FullName: u.FullName, AvatarURL: u.AvatarURL}
}

// ChannelProfile is the public channel page projection.
type ChannelProfile struct {
	ID                string `json:"_id"`
	UserName          string `json:"userName"`
	FullName          string `json:"fullName"`
	AvatarURL         string `json:"avatar"`
	CoverImageURL     string `json:"coverImage"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}
