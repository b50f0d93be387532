package galleryservice

import (
	"context"
	"database/sql"
	"io"
	"time"
)

const (
	// Folder is the logical folder every gallery asset is stored under.
	Folder = "blog_thumbnails"

	MaxUploadSize = 10 << 20
)

// AssetHost stores and removes image files. Upload returns the public URL of the stored asset,
// whose last path segment is the asset id followed by an optional extension.
type AssetHost interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error)
	Destroy(ctx context.Context, folder, publicID string) error
}

type Image struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	BlogID    *int      `json:"blog_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Image) OwnerID() int {
	return i.UserID
}

type GalleryModel struct {
	db *sql.DB
}

type GalleryService struct {
	m    *GalleryModel
	host AssetHost
}
