package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sushihentaime/quillpost/internal/common"
)

// ErrEmptySearch is returned when the search text holds no searchable term.
var ErrEmptySearch = errors.New("query parameter 'q' is required")

func NewBlogService(db *sql.DB, c *common.Cache, overviewTTL time.Duration) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c, overviewTTL: overviewTTL}
}

type CreateBlogRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Thumbnail string `json:"thumbnail"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	AuthorID  int    `json:"-"`
}

// UpdateBlogRequest carries a partial update. Empty fields keep the stored value.
type UpdateBlogRequest struct {
	ID        int    `json:"-"`
	ActorID   int    `json:"-"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Thumbnail string `json:"thumbnail"`
	Category  string `json:"category"`
	Status    string `json:"status"`
}

// CreateBlog stores a new blog for the author. A thumbnail is also recorded as an image of the author;
// the two inserts are not atomic.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	blog := &Blog{
		AuthorID: req.AuthorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  sanitizeContent(strings.TrimSpace(req.Content)),
		Category: strings.TrimSpace(req.Category),
		Status:   strings.TrimSpace(req.Status),
	}

	if thumbnail := strings.TrimSpace(req.Thumbnail); thumbnail != "" {
		blog.Thumbnail = &thumbnail
	}

	v := common.NewValidator()
	validateTitle(v, blog.Title)
	validateContent(v, blog.Content)
	validateCategory(v, blog.Category)
	validateStatus(v, blog.Status)
	validateInt(v, blog.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	if blog.Thumbnail != nil {
		err = s.m.insertImage(ctx, blog.AuthorID, blog.ID, *blog.Thumbnail)
		if err != nil {
			return nil, err
		}
	}

	s.c.Invalidate(common.CacheKeyOverview(blog.AuthorID))

	return blog, nil
}

// GetBlogByID returns a blog regardless of its status.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogById(ctx, id)
}

// GetPublicBlogs returns the public feed. Without a limit every public blog is returned.
func (s *BlogService) GetPublicBlogs(ctx context.Context, limit, offset *int) ([]Blog, error) {
	v := common.NewValidator()
	if limit != nil {
		validateInt(v, *limit, "limit")
	}
	if offset != nil {
		v.Check(*offset >= 0, "offset", "must not be negative")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	var o int
	if offset != nil {
		o = *offset
	}

	return s.m.getPublicBlogs(ctx, limit, o)
}

func (s *BlogService) GetBlogsByAuthor(ctx context.Context, authorID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPublicBlogsByAuthor(ctx, authorID)
}

// UpdateBlog applies a partial update. Only the author may update a blog.
func (s *BlogService) UpdateBlog(ctx context.Context, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, req.ID, "id")
	validateInt(v, req.ActorID, "user_id")
	if status := strings.TrimSpace(req.Status); status != "" {
		validateStatus(v, status)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := common.Authorize(blog, req.ActorID); err != nil {
		return nil, err
	}

	previousThumbnail := blog.Thumbnail

	if title := strings.TrimSpace(req.Title); title != "" {
		blog.Title = title
	}
	if content := strings.TrimSpace(req.Content); content != "" {
		blog.Content = sanitizeContent(content)
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		blog.Category = category
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		blog.Status = status
	}
	if thumbnail := strings.TrimSpace(req.Thumbnail); thumbnail != "" {
		blog.Thumbnail = &thumbnail
	}

	validateTitle(v, blog.Title)
	validateContent(v, blog.Content)
	validateCategory(v, blog.Category)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	if thumbnailChanged(previousThumbnail, blog.Thumbnail) {
		err = s.m.upsertImage(ctx, blog.AuthorID, blog.ID, *blog.Thumbnail)
		if err != nil {
			return nil, err
		}
	}

	s.c.Invalidate(common.CacheKeyOverview(blog.AuthorID))

	return blog, nil
}

// UpdateStatus switches the visibility of a blog. Only the author may do so.
func (s *BlogService) UpdateStatus(ctx context.Context, id, actorID int, status string) (*Blog, error) {
	status = strings.TrimSpace(status)

	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, actorID, "user_id")
	validateStatus(v, status)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.UpdateBlog(ctx, &UpdateBlogRequest{ID: id, ActorID: actorID, Status: status})
}

// DeleteBlog removes the blog. Likes, comments and bookmarks are removed by the database.
func (s *BlogService) DeleteBlog(ctx context.Context, id, actorID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, actorID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return err
	}

	if err := common.Authorize(blog, actorID); err != nil {
		return err
	}

	err = s.m.deleteBlog(ctx, id, actorID)
	if err != nil {
		return err
	}

	s.c.Invalidate(common.CacheKeyOverview(actorID))

	return nil
}

// SearchBlogs runs a prefix full text search over public blogs.
func (s *BlogService) SearchBlogs(ctx context.Context, q string) ([]Blog, error) {
	tsquery := searchQuery(q)
	if tsquery == "" {
		return nil, ErrEmptySearch
	}

	return s.m.searchPublicBlogs(ctx, tsquery)
}

// GetOverview returns the author's dashboard rows. Results are cached until the TTL elapses or
// the author changes one of their blogs.
func (s *BlogService) GetOverview(ctx context.Context, authorID int) ([]OverviewItem, error) {
	v := common.NewValidator()
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyOverview(authorID)
	if s.c != nil {
		if cached, ok := s.c.Get(key); ok {
			return cached.([]OverviewItem), nil
		}
	}

	items, err := s.m.getOverview(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(key, items, s.overviewTTL)
	}

	return items, nil
}

// InvalidateOverview drops the cached dashboard of the author, e.g. after engagement on one of their blogs.
func (s *BlogService) InvalidateOverview(authorID int) {
	s.c.Invalidate(common.CacheKeyOverview(authorID))
}

func thumbnailChanged(before, after *string) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}
