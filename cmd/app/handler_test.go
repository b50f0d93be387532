package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/quillpost/internal/assistservice"
	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/galleryservice"
)

func createBlog(t *testing.T, ts *testServer, token string, payload map[string]any) int {
	t.Helper()

	status, _, body := ts.post(t, "/v1/blogs", payload, &token)
	require.Equal(t, http.StatusCreated, status, body)

	return int(body["id"].(float64))
}

func publicBlog(title string) map[string]any {
	return map[string]any{"title": title, "content": "<p>x</p>", "category": "Tech", "status": "public"}
}

func TestHealthCheckHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/healthcheck", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, map[string]any{"environment": "development", "version": "test"}, body["system_info"])

	status, _, body = ts.get(t, "/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", body["error"])

	status, _, _ = ts.delete(t, "/v1/healthcheck", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestProfileHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := app.token(t, "ext_ada", "ada")

	status, _, body := ts.get(t, "/v1/user", &token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user profile has not been synced", body["error"])

	status, _, body = ts.get(t, "/v1/user", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, body = ts.post(t, "/v1/profile", nil, &token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ada", body["username"])
	assert.NotContains(t, body, "email")
	id := body["id"].(float64)

	status, _, body = ts.get(t, "/v1/user", &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body["user_id"])

	status, _, body = ts.patch(t, "/v1/profile", map[string]any{"bio": "  Writes about Go  "}, &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Writes about Go", body["bio"])

	status, _, body = ts.patch(t, "/v1/profile", map[string]any{"bio": strings.Repeat("a", 501)}, &token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, body = ts.patch(t, "/v1/profile", map[string]any{"nickname": "x"}, &token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `request body contains unknown field "nickname"`, body["error"])

	status, _, body = ts.get(t, "/v1/profile", &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Writes about Go", body["bio"])
	assert.NotEmpty(t, body["lastSync"])

	status, _, body = ts.get(t, fmt.Sprintf("/v1/users/%d", int(id)), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ada", body["username"])

	status, _, body = ts.get(t, "/v1/users/999999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])

	other := app.token(t, "ext_other", "ada")
	status, _, body = ts.post(t, "/v1/profile", nil, &other)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "this username is already taken", body["error"])
}

func TestBlogHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	owner, ownerID := app.signUp(t, ts, "ext_owner", "owner")
	other, _ := app.signUp(t, ts, "ext_other", "other")

	t.Run("create", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/blogs", publicBlog("A"), &owner)
		assert.Equal(t, http.StatusCreated, status)
		assert.NotZero(t, body["id"])
		assert.Equal(t, float64(ownerID), body["author_id"])

		status, _, body = ts.post(t, "/v1/blogs", map[string]any{"title": "", "content": "", "category": "Tech", "status": "draft"}, &owner)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["error"], "title")
		assert.Contains(t, body["error"], "status")

		status, _, _ = ts.post(t, "/v1/blogs", publicBlog("A"), nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	id := createBlog(t, ts, owner, map[string]any{"title": "Original", "content": "<p>body</p>", "category": "Go", "status": "public", "thumbnail": "https://cdn.example.com/t.png"})
	path := fmt.Sprintf("/v1/blogs/%d", id)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		status, _, body := ts.patch(t, path, map[string]any{"status": "private"}, &owner)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Blog updated successfully", body["message"])

		blog := body["blog"].(map[string]any)
		assert.Equal(t, "private", blog["status"])
		assert.Equal(t, "Original", blog["title"])
		assert.Equal(t, "<p>body</p>", blog["content"])
		assert.Equal(t, "Go", blog["category"])
		assert.Equal(t, "https://cdn.example.com/t.png", blog["thumbnail"])
	})

	t.Run("non owner", func(t *testing.T) {
		status, _, body := ts.patch(t, path, map[string]any{"title": "Hijacked"}, &other)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, blogForbidden, body["error"])

		status, _, _ = ts.delete(t, path, &other)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("status change", func(t *testing.T) {
		status, _, body := ts.patch(t, path+"/status", map[string]any{"status": "public"}, &owner)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "public", body["blog"].(map[string]any)["status"])

		status, _, _ = ts.patch(t, path+"/status", map[string]any{"status": "hidden"}, &owner)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("reads", func(t *testing.T) {
		status, _, body := ts.get(t, fmt.Sprintf("/v1/blogs/view/%d", id), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Original", body["title"])
		assert.Equal(t, "owner", body["author"].(map[string]any)["username"])

		status, _, body = ts.get(t, "/v1/blogs?limit=10&offset=0", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["blogs"])

		status, _, _ = ts.get(t, "/v1/blogs?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, status)

		status, _, body = ts.get(t, fmt.Sprintf("/v1/blogs/author/%d", ownerID), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, body["blogs"], 2)

		status, _, body = ts.get(t, "/v1/blogs/search?q=origin", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, body["blogs"], 1)

		status, _, body = ts.get(t, "/v1/blogs/search", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Query parameter 'q' is required", body["error"])

		status, _, body = ts.get(t, "/v1/blogs/overview", &owner)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, body["blogs"], 2)

		status, _, _ = ts.get(t, "/v1/blogs/view/999999", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("delete", func(t *testing.T) {
		status, _, body := ts.delete(t, path, &owner)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Blog deleted successfully", body["message"])

		status, _, _ = ts.delete(t, path, &owner)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestLikeHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := app.signUp(t, ts, "ext_liker", "liker")
	id := createBlog(t, ts, token, publicBlog("Likeable"))
	path := fmt.Sprintf("/v1/likes/%d", id)

	status, _, body := ts.post(t, path, nil, &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Liked successfully", body["message"])

	status, _, body = ts.get(t, path, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total_likes"])

	status, _, body = ts.post(t, path, nil, &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Unliked successfully", body["message"])

	status, _, body = ts.get(t, path, nil)
	assert.Equal(t, float64(0), body["total_likes"])

	status, _, _ = ts.post(t, "/v1/likes/999999", nil, &token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCommentHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	author, authorID := app.signUp(t, ts, "ext_author", "author")
	reader, readerID := app.signUp(t, ts, "ext_reader", "reader")
	id := createBlog(t, ts, author, publicBlog("Discussed"))
	path := fmt.Sprintf("/v1/comments/%d", id)

	status, _, body := ts.post(t, path, map[string]any{"content": "  "}, &reader)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Comment cannot be empty", body["error"])

	status, _, body = ts.post(t, path, map[string]any{"content": "Great read"}, &reader)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Comment added", body["message"])
	assert.NotEmpty(t, body["createdAt"])
	commentID := int(body["commentId"].(float64))

	events := app.events.published(common.CommentCreatedKey)
	require.Len(t, events, 1)
	var event common.CommentCreatedEvent
	require.NoError(t, json.Unmarshal(events[0], &event))
	assert.Equal(t, common.CommentCreatedEvent{CommentID: commentID, BlogID: id, AuthorID: authorID, UserID: readerID, Comment: "Great read"}, event)

	status, _, body = ts.get(t, path, nil)
	assert.Equal(t, http.StatusOK, status)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "reader", comments[0].(map[string]any)["username"])
	assert.Equal(t, "Great read", comments[0].(map[string]any)["comment"])

	status, _, body = ts.delete(t, fmt.Sprintf("/v1/comments/%d", commentID), &author)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You can only delete your own comments", body["error"])

	status, _, body = ts.delete(t, fmt.Sprintf("/v1/comments/%d", commentID), &reader)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Comment deleted successfully", body["message"])

	status, _, _ = ts.delete(t, fmt.Sprintf("/v1/comments/%d", commentID), &reader)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookmarkHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := app.signUp(t, ts, "ext_reader", "reader")
	id := createBlog(t, ts, token, publicBlog("Keep"))
	path := fmt.Sprintf("/v1/bookmarks/%d", id)

	status, _, body := ts.post(t, path, nil, &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["isBookmarked"])
	assert.Equal(t, "Bookmark added", body["message"])

	status, _, body = ts.get(t, path, &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["isBookmarked"])

	status, _, body = ts.get(t, "/v1/bookmarks", &token)
	assert.Equal(t, http.StatusOK, status)
	bookmarks := body["bookmarks"].([]any)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "Keep", bookmarks[0].(map[string]any)["title"])

	status, _, body = ts.post(t, path, nil, &token)
	assert.Equal(t, false, body["isBookmarked"])
	assert.Equal(t, "Bookmark removed", body["message"])
}

func TestFollowHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	follower, followerID := app.signUp(t, ts, "ext_follower", "follower")
	_, followeeID := app.signUp(t, ts, "ext_followee", "followee")

	status, _, body := ts.post(t, fmt.Sprintf("/v1/follow/%d", followerID), nil, &follower)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You cannot follow yourself", body["error"])

	status, _, body = ts.post(t, fmt.Sprintf("/v1/follow/%d", followeeID), nil, &follower)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Followed successfully", body["message"])
	assert.Len(t, app.events.published(common.UserFollowedKey), 1)

	check := fmt.Sprintf("/v1/follow/check?followerId=%d&followingId=%d", followerID, followeeID)
	for range 2 {
		status, _, body = ts.get(t, check, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["isFollowing"])
	}

	status, _, body = ts.get(t, "/v1/follow/check?followerId=1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request", body["error"])

	status, _, body = ts.get(t, fmt.Sprintf("/v1/followers/%d", followeeID), nil)
	assert.Equal(t, float64(1), body["followersCount"])

	status, _, body = ts.get(t, fmt.Sprintf("/v1/following/%d", followerID), nil)
	assert.Equal(t, http.StatusOK, status)
	following := body["following"].([]any)
	require.Len(t, following, 1)
	assert.Equal(t, "followee", following[0].(map[string]any)["users"].(map[string]any)["username"])

	status, _, body = ts.post(t, fmt.Sprintf("/v1/follow/%d", followeeID), nil, &follower)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Unfollowed successfully", body["message"])
	assert.Len(t, app.events.published(common.UserFollowedKey), 1)

	status, _, body = ts.post(t, "/v1/follow/999999", nil, &follower)
	assert.Equal(t, http.StatusNotFound, status)
}

func uploadBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestGalleryHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	owner, ownerID := app.signUp(t, ts, "ext_owner", "owner")
	other, _ := app.signUp(t, ts, "ext_other", "other")

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	app.host.On("Upload", galleryservice.Folder, "cover.png", "image/png", int64(len(png))).
		Return("https://cdn.example.com/media/blog_thumbnails/abc123.png", nil)
	app.host.On("Destroy", galleryservice.Folder, "abc123").Return(nil)

	body, contentType := uploadBody(t, "cover.png", png)
	status, _, res := ts.do(t, http.MethodPost, "/v1/gallery", body, contentType, &owner)
	require.Equal(t, http.StatusCreated, status, res)
	assert.Equal(t, float64(ownerID), res["user_id"])
	assert.Nil(t, res["blog_id"])
	imageID := int(res["id"].(float64))

	body, contentType = uploadBody(t, "notes.txt", []byte("plain text"))
	status, _, res = ts.do(t, http.MethodPost, "/v1/gallery", body, contentType, &owner)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File must be an image", res["error"])

	status, _, res = ts.do(t, http.MethodPost, "/v1/gallery", strings.NewReader("{}"), "application/json", &owner)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File is required", res["error"])

	status, _, res = ts.get(t, "/v1/gallery", &owner)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, res["images"], 1)

	status, _, res = ts.delete(t, fmt.Sprintf("/v1/gallery/%d", imageID), &other)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, imageForbidden, res["error"])

	status, _, res = ts.delete(t, fmt.Sprintf("/v1/gallery/%d", imageID), &owner)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Image deleted successfully", res["message"])

	status, _, res = ts.get(t, "/v1/gallery", &owner)
	assert.Empty(t, res["images"])

	app.host.AssertCalled(t, "Destroy", galleryservice.Folder, "abc123")
}

func TestAssistHandlers(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := app.signUp(t, ts, "ext_writer", "writer")

	t.Run("summary too short", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/ai/summarize", map[string]any{"content": strings.Repeat("x", 50)}, &token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Content must be at least 100 characters", body["error"])
	})

	t.Run("summary", func(t *testing.T) {
		app.gen.On("Generate", mock.MatchedBy(func(p string) bool { return strings.Contains(p, "Summarize this blog content") }), mock.Anything).
			Return("- First point\n- Second point", nil).Once()

		status, _, body := ts.post(t, "/v1/ai/summarize", map[string]any{"content": strings.Repeat("word ", 30)}, &token)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []any{"First point", "Second point"}, body["summary"])
		assert.Equal(t, float64(4), body["wordCount"])
	})

	t.Run("draft", func(t *testing.T) {
		app.gen.On("Generate", mock.MatchedBy(func(p string) bool { return strings.Contains(p, "Write about: Go generics") }), mock.Anything).
			Return("Title: Generics\n\nCategory: Go\n\nExcerpt: Type parameters.\n\nGo generics landed in 1.18.", nil).Once()

		status, _, body := ts.post(t, "/v1/ai/generate", map[string]any{"topic": "Go generics", "keywords": []string{"generics"}}, &token)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Generics", body["title"])
		assert.Equal(t, "Go", body["category"])
		assert.Equal(t, "Type parameters.", body["excerpt"])
		assert.Equal(t, "Go **generics** landed in 1.18.", body["content"])
	})

	t.Run("draft failure", func(t *testing.T) {
		app.gen.On("Generate", mock.MatchedBy(func(p string) bool { return strings.Contains(p, "Write about: Broken") }), mock.Anything).
			Return("no structure at all", nil).Once()

		status, _, body := ts.post(t, "/v1/ai/generate", map[string]any{"topic": "Broken"}, &token)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Generation failed", body["error"])
		assert.Contains(t, body["details"], assistservice.ErrGenerationFailed.Error())
	})

	t.Run("anonymous", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/ai/generate", map[string]any{"topic": "x"}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
