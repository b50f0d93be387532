package galleryservice

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/sushihentaime/quillpost/internal/common"
)

func NewGalleryService(db *sql.DB, host AssetHost) *GalleryService {
	return &GalleryService{m: newGalleryModel(db), host: host}
}

// Upload stores the file with the asset host and records it in the user's gallery.
// Only images up to MaxUploadSize are accepted; the type is sniffed from the content.
func (s *GalleryService) Upload(ctx context.Context, userID int, filename string, file io.Reader, size int64) (*Image, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if file == nil || size == 0 {
		return nil, common.NewValidationError("File is required")
	}

	if size > MaxUploadSize {
		return nil, common.NewValidationError(fmt.Sprintf("File must not be larger than %d MB", MaxUploadSize>>20))
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.NewValidationError("File must be an image")
	}

	assetURL, err := s.host.Upload(ctx, Folder, filename, contentType, io.MultiReader(bytes.NewReader(head), file), size)
	if err != nil {
		return nil, err
	}

	return s.m.insert(ctx, userID, assetURL)
}

// List returns the user's images, newest first.
func (s *GalleryService) List(ctx context.Context, userID int) ([]Image, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listByUser(ctx, userID)
}

// Delete removes the asset from the host and then the gallery row. Only the owner may delete an image.
func (s *GalleryService) Delete(ctx context.Context, id, actorID int) error {
	v := common.NewValidator()
	v.Check(id > 0, "id", "must be greater than zero")
	v.Check(actorID > 0, "user_id", "must be greater than zero")
	if !v.Valid() {
		return v.ValidationError()
	}

	img, err := s.m.get(ctx, id)
	if err != nil {
		return err
	}

	if err := common.Authorize(img, actorID); err != nil {
		return err
	}

	err = s.host.Destroy(ctx, Folder, PublicID(img.ImageURL))
	if err != nil {
		return fmt.Errorf("could not remove asset: %w", err)
	}

	return s.m.delete(ctx, id, actorID)
}

// PublicID derives the asset id from the last path segment of its URL, without extension.
func PublicID(assetURL string) string {
	p := assetURL
	if u, err := url.Parse(assetURL); err == nil && u.Path != "" {
		p = u.Path
	}

	base := path.Base(p)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	return base
}
