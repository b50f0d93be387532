package galleryservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/quillpost/internal/common"
)

func newGalleryModel(db *sql.DB) *GalleryModel {
	return &GalleryModel{db: db}
}

func scanImage(row interface{ Scan(...any) error }) (*Image, error) {
	var img Image
	var blogID sql.NullInt64

	err := row.Scan(&img.ID, &img.UserID, &blogID, &img.ImageURL, &img.CreatedAt)
	if err != nil {
		return nil, err
	}

	if blogID.Valid {
		id := int(blogID.Int64)
		img.BlogID = &id
	}

	return &img, nil
}

func (m *GalleryModel) insert(ctx context.Context, userID int, url string) (*Image, error) {
	query := `
		INSERT INTO images (user_id, image_url)
		VALUES ($1, $2)
		RETURNING id, user_id, blog_id, image_url, created_at`

	img, err := scanImage(m.db.QueryRowContext(ctx, query, userID, url))
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "images_user_id_fkey"):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return img, nil
}

func (m *GalleryModel) get(ctx context.Context, id int) (*Image, error) {
	query := `
		SELECT id, user_id, blog_id, image_url, created_at
		FROM images
		WHERE id = $1`

	img, err := scanImage(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return img, nil
}

func (m *GalleryModel) listByUser(ctx context.Context, userID int) ([]Image, error) {
	query := `
		SELECT id, user_id, blog_id, image_url, created_at
		FROM images
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

func (m *GalleryModel) delete(ctx context.Context, id, userID int) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
