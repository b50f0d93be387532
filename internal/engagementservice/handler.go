package engagementservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/quillpost/internal/common"
)

const maxCommentLength = 2000

func NewEngagementService(db *sql.DB) *EngagementService {
	return &EngagementService{m: newEngagementModel(db)}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

// ToggleLike likes the blog for the user, or removes the like if it exists. It reports whether the blog is now liked.
func (s *EngagementService) ToggleLike(ctx context.Context, blogID, userID int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "blog_id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.toggleLike(ctx, blogID, userID)
}

// CountLikes is always read from the likes table.
func (s *EngagementService) CountLikes(ctx context.Context, blogID int) (int, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.countLikes(ctx, blogID)
}

func (s *EngagementService) AddComment(ctx context.Context, blogID, userID int, text string) (*Comment, error) {
	text = strings.TrimSpace(text)

	v := common.NewValidator()
	validateInt(v, blogID, "blog_id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if text == "" {
		return nil, common.NewValidationError("Comment cannot be empty")
	}
	v.Check(v.CheckStringLength(text, 1, maxCommentLength), "comment", "must not be more than 2000 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := &Comment{BlogID: blogID, UserID: userID, Comment: text}
	err := s.m.insertComment(ctx, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// GetComments returns the comments of a blog, newest first.
func (s *EngagementService) GetComments(ctx context.Context, blogID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentsByBlog(ctx, blogID)
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *EngagementService) DeleteComment(ctx context.Context, id, actorID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, actorID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	c, err := s.m.getComment(ctx, id)
	if err != nil {
		return err
	}

	if err := common.Authorize(c, actorID); err != nil {
		return err
	}

	return s.m.deleteComment(ctx, id, actorID)
}

// ToggleBookmark reports whether the blog is bookmarked after the call.
func (s *EngagementService) ToggleBookmark(ctx context.Context, userID, blogID int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.toggleBookmark(ctx, userID, blogID)
}

func (s *EngagementService) IsBookmarked(ctx context.Context, userID, blogID int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.bookmarkExists(ctx, userID, blogID)
}

func (s *EngagementService) GetBookmarks(ctx context.Context, userID int) ([]BookmarkedBlog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBookmarks(ctx, userID)
}
