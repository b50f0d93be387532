package engagementservice

import (
	"database/sql"
	"time"
)

type Comment struct {
	ID             int       `json:"id"`
	BlogID         int       `json:"blog_id"`
	UserID         int       `json:"user_id"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profile_picture"`
	// BlogAuthorID is the owner of the commented blog, used to notify them.
	BlogAuthorID int `json:"-"`
}

func (c *Comment) OwnerID() int {
	return c.UserID
}

// BookmarkedBlog is the summary of a blog shown in the caller's bookmark list.
type BookmarkedBlog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Thumbnail *string   `json:"thumbnail"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type EngagementModel struct {
	db *sql.DB
}

type EngagementService struct {
	m *EngagementModel
}
