package engagementservice

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/quillpost/internal/common"
)

func setupTestEnvironment(t *testing.T) (*EngagementService, *sql.DB, func() error) {
	db := common.TestDB("file://../../migrations", t)

	cleanup := func() error {
		for _, table := range []string{"likes", "comments", "bookmarks", "blogs", "users"} {
			_, err := db.Exec("DELETE FROM " + table)
			if err != nil {
				return err
			}
		}
		return nil
	}

	return NewEngagementService(db), db, cleanup
}

func createTestUser(t *testing.T, db *sql.DB, handle string) int {
	t.Helper()

	var id int
	err := db.QueryRow(`
		INSERT INTO users (external_id, name, username, email, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, "ext_"+handle, handle, handle, handle+"@example.com", "https://img.example.com/"+handle).Scan(&id)
	require.NoError(t, err)

	return id
}

func createTestBlog(t *testing.T, db *sql.DB, authorID int, title string) int {
	t.Helper()

	var id int
	err := db.QueryRow(`
		INSERT INTO blogs (author_id, title, content, thumbnail, category, status)
		VALUES ($1, $2, '<p>body</p>', 'https://cdn.example.com/t.png', 'Tech', 'public')
		RETURNING id`, authorID, title).Scan(&id)
	require.NoError(t, err)

	return id
}

func TestToggleLike(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	t.Cleanup(func() { cleanup() })

	authorID := createTestUser(t, db, "author")
	readerID := createTestUser(t, db, "reader")
	blogID := createTestBlog(t, db, authorID, "Likeable")

	liked, err := s.ToggleLike(ctx, blogID, readerID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := s.CountLikes(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	liked, err = s.ToggleLike(ctx, blogID, readerID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = s.CountLikes(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = s.ToggleLike(ctx, blogID+1000, readerID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = s.ToggleLike(ctx, 0, readerID)
	assert.ErrorAs(t, err, &common.ValidationError{})
}

func TestToggleLike_ConcurrentDuplicates(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	t.Cleanup(func() { cleanup() })

	authorID := createTestUser(t, db, "author")
	readerID := createTestUser(t, db, "reader")
	blogID := createTestBlog(t, db, authorID, "Racy")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleLike(ctx, blogID, readerID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := s.CountLikes(ctx, blogID)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, 1)
}

func TestComments(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	t.Cleanup(func() { cleanup() })

	authorID := createTestUser(t, db, "author")
	readerID := createTestUser(t, db, "reader")
	blogID := createTestBlog(t, db, authorID, "Discussed")

	testCases := []struct {
		name        string
		blogID      int
		text        string
		expectedErr error
	}{
		{name: "valid comment", blogID: blogID, text: "  Great post!  "},
		{name: "empty comment", blogID: blogID, text: "   ", expectedErr: common.NewValidationError("Comment cannot be empty")},
		{name: "too long", blogID: blogID, text: strings.Repeat("a", 2001), expectedErr: common.ValidationError{Errors: map[string]string{"comment": "must not be more than 2000 characters long"}}},
		{name: "missing blog", blogID: blogID + 1000, text: "hello", expectedErr: common.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := s.AddComment(ctx, tc.blogID, readerID, tc.text)
			assert.Equal(t, tc.expectedErr, err)

			if tc.expectedErr == nil {
				assert.NotZero(t, c.ID)
				assert.False(t, c.CreatedAt.IsZero())
				assert.Equal(t, "Great post!", c.Comment)
				assert.Equal(t, authorID, c.BlogAuthorID)
			}
		})
	}

	second, err := s.AddComment(ctx, blogID, authorID, "Thanks!")
	require.NoError(t, err)

	comments, err := s.GetComments(ctx, blogID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, "author", comments[0].Username)
	assert.Equal(t, "reader", comments[1].Username)
	assert.Equal(t, "https://img.example.com/reader", comments[1].ProfilePicture)

	err = s.DeleteComment(ctx, second.ID, readerID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = s.DeleteComment(ctx, second.ID, authorID)
	require.NoError(t, err)

	err = s.DeleteComment(ctx, second.ID, authorID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	comments, err = s.GetComments(ctx, blogID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestBookmarks(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	t.Cleanup(func() { cleanup() })

	authorID := createTestUser(t, db, "author")
	readerID := createTestUser(t, db, "reader")
	first := createTestBlog(t, db, authorID, "First")
	second := createTestBlog(t, db, authorID, "Second")

	for _, blogID := range []int{first, second} {
		bookmarked, err := s.ToggleBookmark(ctx, readerID, blogID)
		require.NoError(t, err)
		assert.True(t, bookmarked)
	}

	ok, err := s.IsBookmarked(ctx, readerID, first)
	require.NoError(t, err)
	assert.True(t, ok)

	blogs, err := s.GetBookmarks(ctx, readerID)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "https://cdn.example.com/t.png", *blogs[0].Thumbnail)

	bookmarked, err := s.ToggleBookmark(ctx, readerID, first)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	ok, err = s.IsBookmarked(ctx, readerID, first)
	require.NoError(t, err)
	assert.False(t, ok)

	blogs, err = s.GetBookmarks(ctx, readerID)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Second", blogs[0].Title)

	empty, err := s.GetBookmarks(ctx, authorID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.ToggleBookmark(ctx, readerID, second+1000)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}
