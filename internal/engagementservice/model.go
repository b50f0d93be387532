package engagementservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/quillpost/internal/common"
)

func newEngagementModel(db *sql.DB) *EngagementModel {
	return &EngagementModel{db: db}
}

func (m *EngagementModel) toggleLike(ctx context.Context, blogID, userID int) (bool, error) {
	return common.Toggle(ctx, m.db,
		`DELETE FROM likes WHERE blog_id = $1 AND user_id = $2`,
		`INSERT INTO likes (blog_id, user_id) VALUES ($1, $2) ON CONFLICT (blog_id, user_id) DO NOTHING`,
		blogID, userID)
}

func (m *EngagementModel) countLikes(ctx context.Context, blogID int) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&count)
	return count, err
}

// insertComment stores the comment and fills in its id, timestamp and the blog's author.
func (m *EngagementModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (blog_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, (SELECT author_id FROM blogs WHERE id = $1)`

	err := m.db.QueryRowContext(ctx, query, c.BlogID, c.UserID, c.Comment).Scan(&c.ID, &c.CreatedAt, &c.BlogAuthorID)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, ""):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *EngagementModel) getComment(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT id, blog_id, user_id, content, created_at
		FROM comments
		WHERE id = $1`

	var c Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.BlogID, &c.UserID, &c.Comment, &c.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *EngagementModel) getCommentsByBlog(ctx context.Context, blogID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.blog_id, c.user_id, c.content, c.created_at, COALESCE(u.username, ''), u.profile_picture
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.Comment, &c.CreatedAt, &c.Username, &c.ProfilePicture)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *EngagementModel) deleteComment(ctx context.Context, id, userID int) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
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

func (m *EngagementModel) toggleBookmark(ctx context.Context, userID, blogID int) (bool, error) {
	return common.Toggle(ctx, m.db,
		`DELETE FROM bookmarks WHERE user_id = $1 AND blog_id = $2`,
		`INSERT INTO bookmarks (user_id, blog_id) VALUES ($1, $2) ON CONFLICT (user_id, blog_id) DO NOTHING`,
		userID, blogID)
}

func (m *EngagementModel) bookmarkExists(ctx context.Context, userID, blogID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND blog_id = $2)`, userID, blogID).Scan(&exists)
	return exists, err
}

func (m *EngagementModel) getBookmarks(ctx context.Context, userID int) ([]BookmarkedBlog, error) {
	query := `
		SELECT b.id, b.title, b.thumbnail, b.content, b.category, b.created_at
		FROM bookmarks bm
		JOIN blogs b ON bm.blog_id = b.id
		WHERE bm.user_id = $1
		ORDER BY bm.created_at DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []BookmarkedBlog{}
	for rows.Next() {
		var b BookmarkedBlog
		var thumbnail sql.NullString
		err := rows.Scan(&b.ID, &b.Title, &thumbnail, &b.Content, &b.Category, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		if thumbnail.Valid {
			b.Thumbnail = &thumbnail.String
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
