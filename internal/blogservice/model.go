package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/userservice"
)

var (
	ErrAuthorForeignKey = errors.New("author_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

const (
	blogColumns = `b.id, b.author_id, b.title, b.content, b.thumbnail, b.category, b.status, b.created_at, b.updated_at`

	authorColumns = `u.id, u.name, COALESCE(u.username, ''), u.profile_picture`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner, withAuthor bool) (*Blog, error) {
	var blog Blog
	var thumbnail sql.NullString

	dest := []any{&blog.ID, &blog.AuthorID, &blog.Title, &blog.Content, &thumbnail, &blog.Category, &blog.Status, &blog.CreatedAt, &blog.UpdatedAt}
	if withAuthor {
		blog.Author = &userservice.Summary{}
		dest = append(dest, &blog.Author.ID, &blog.Author.Name, &blog.Author.Username, &blog.Author.ProfilePicture)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if thumbnail.Valid {
		blog.Thumbnail = &thumbnail.String
	}

	return &blog, nil
}

func (m *BlogModel) queryBlogs(ctx context.Context, withAuthor bool, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows, withAuthor)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (author_id, title, content, thumbnail, category, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	var thumbnail string
	if blog.Thumbnail != nil {
		thumbnail = *blog.Thumbnail
	}

	args := []any{blog.AuthorID, blog.Title, blog.Content, nullString(thumbnail), blog.Category, blog.Status}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_author_id_fkey"):
			return ErrAuthorForeignKey
		default:
			return err
		}
	}

	return nil
}

// insertImage records a thumbnail in the gallery, linked to the blog it was attached to.
func (m *BlogModel) insertImage(ctx context.Context, userID, blogID int, url string) error {
	query := `
		INSERT INTO images (user_id, blog_id, image_url)
		VALUES ($1, $2, $3)`

	_, err := m.db.ExecContext(ctx, query, userID, blogID, url)
	return err
}

// upsertImage points the blog's image row at url, creating the row if the blog has none.
func (m *BlogModel) upsertImage(ctx context.Context, userID, blogID int, url string) error {
	query := `
		UPDATE images
		SET image_url = $1
		WHERE blog_id = $2 AND user_id = $3`

	res, err := m.db.ExecContext(ctx, query, url, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return m.insertImage(ctx, userID, blogID, url)
	}

	return nil
}

// getBlogById returns the blog joined with its author regardless of status.
func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `, ` + authorColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id), true)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, content = $2, thumbnail = $3, category = $4, status = $5, updated_at = NOW()
		WHERE id = $6 AND author_id = $7
		RETURNING updated_at`

	var thumbnail string
	if blog.Thumbnail != nil {
		thumbnail = *blog.Thumbnail
	}

	args := []any{blog.Title, blog.Content, nullString(thumbnail), blog.Category, blog.Status, blog.ID, blog.AuthorID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, blogId, authorId int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND author_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogId, authorId)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getPublicBlogs returns the public feed newest first. A nil limit returns every row.
func (m *BlogModel) getPublicBlogs(ctx context.Context, limit *int, offset int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `, ` + authorColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.status = 'public'
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2`

	var l sql.NullInt64
	if limit != nil {
		l = sql.NullInt64{Int64: int64(*limit), Valid: true}
	}

	return m.queryBlogs(ctx, true, query, l, offset)
}

// getPublicBlogsByAuthor never includes private blogs, not even for the author.
func (m *BlogModel) getPublicBlogsByAuthor(ctx context.Context, authorID int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `, ` + authorColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.author_id = $1 AND b.status = 'public'
		ORDER BY b.created_at DESC, b.id DESC`

	return m.queryBlogs(ctx, true, query, authorID)
}

func (m *BlogModel) searchPublicBlogs(ctx context.Context, tsquery string) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `, ` + authorColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.status = 'public' AND b.search_vector @@ to_tsquery('english', $1)
		ORDER BY b.created_at DESC, b.id DESC`

	return m.queryBlogs(ctx, true, query, tsquery)
}

// getOverview counts likes and comments per blog of the author, private blogs included.
func (m *BlogModel) getOverview(ctx context.Context, authorID int) ([]OverviewItem, error) {
	query := `
		SELECT b.id, b.title, b.status, b.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.id),
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id)
		FROM blogs b
		WHERE b.author_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OverviewItem{}
	for rows.Next() {
		var item OverviewItem
		err := rows.Scan(&item.ID, &item.Title, &item.Status, &item.CreatedAt, &item.Likes, &item.Comments)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
