package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/userservice"
)

const (
	StatusPublic  = "public"
	StatusPrivate = "private"
)

type Blog struct {
	ID       int    `json:"id"`
	AuthorID int    `json:"author_id"`
	Title    string `json:"title"`
	// Content is HTML with script elements removed.
	Content   string               `json:"content"`
	Thumbnail *string              `json:"thumbnail"`
	Category  string               `json:"category"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Author    *userservice.Summary `json:"author,omitempty"`
}

func (b *Blog) OwnerID() int {
	return b.AuthorID
}

// OverviewItem is one row of the author's dashboard.
type OverviewItem struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m           *BlogModel
	c           *common.Cache
	overviewTTL time.Duration
}
