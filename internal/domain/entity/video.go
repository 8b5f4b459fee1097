package entity

import "time"

// Video is owned by exactly one user. Only the owner can mutate it; the view
// counter is incremented by any reader.
type Video struct {
	ID           string       `json:"_id"`
	OwnerID      string       `json:"-"`
	Owner        OwnerSummary `json:"owner"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	IsPublished  bool         `json:"isPublished"`
	LikesCount   int64        `json:"likesCount,omitempty"`
	IsLiked      bool         `json:"isLiked"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// VideoPage mirrors the paginated list shape the clients already consume.
type VideoPage struct {
	Docs        []Video `json:"docs"`
	TotalDocs   int64   `json:"totalDocs"`
	Limit       int     `json:"limit"`
	Page        int     `json:"page"`
	TotalPages  int     `json:"totalPages"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
}

// VideoFilter narrows and orders a video listing.
type VideoFilter struct {
	Query         string // case-insensitive substring over title/description
	OwnerID       string
	SortBy        string // createdAt, views, duration, title
	SortAsc       bool
	Page          int
	Limit         int
	OnlyPublished bool
}
