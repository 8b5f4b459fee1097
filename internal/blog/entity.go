package blog

import "time"

// User is a blog account, separate from the video platform's accounts.
type User struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    string
	ProfileImageURL string
	Role            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Post is one published article.
type Post struct {
	ID            string
	Title         string
	Body          string
	CoverImageURL string
	CreatedBy     string
	AuthorName    string
	AuthorImage   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Comment is a reader comment on a post.
type Comment struct {
	ID          string
	BlogID      string
	CreatedBy   string
	AuthorName  string
	AuthorImage string
	Content     string
	CreatedAt   time.Time
}
