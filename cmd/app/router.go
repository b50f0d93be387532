package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	// users
	router.HandlerFunc(http.MethodGet, "/v1/user", app.requireUser(app.currentUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/:id", app.getUserHandler)
	router.HandlerFunc(http.MethodGet, "/v1/profile", app.requireIdentity(app.getProfileHandler))
	router.HandlerFunc(http.MethodPost, "/v1/profile", app.requireIdentity(app.syncProfileHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/profile", app.requireIdentity(app.updateProfileHandler))

	// blogs
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.getPublicBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requireUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/view/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodGet, "/v1/blogs/author/:id", app.getBlogsByAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/v1/blogs/search", app.searchBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/blogs/overview", app.requireUser(app.blogOverviewHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/blogs/:id", app.requireUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/blogs/:id/status", app.requireUser(app.updateBlogStatusHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id", app.requireUser(app.deleteBlogHandler))

	// engagement
	router.HandlerFunc(http.MethodGet, "/v1/likes/:id", app.countLikesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/likes/:id", app.requireUser(app.toggleLikeHandler))
	router.HandlerFunc(http.MethodGet, "/v1/comments/:id", app.getCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/comments/:id", app.requireUser(app.addCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/comments/:id", app.requireUser(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/bookmarks", app.requireUser(app.getBookmarksHandler))
	router.HandlerFunc(http.MethodGet, "/v1/bookmarks/:id", app.requireUser(app.bookmarkStatusHandler))
	router.HandlerFunc(http.MethodPost, "/v1/bookmarks/:id", app.requireUser(app.toggleBookmarkHandler))

	// social graph
	router.HandlerFunc(http.MethodPost, "/v1/follow/:id", app.requireUser(app.toggleFollowHandler))
	router.HandlerFunc(http.MethodGet, "/v1/follow/check", app.checkFollowHandler)
	router.HandlerFunc(http.MethodGet, "/v1/followers/:id", app.countFollowersHandler)
	router.HandlerFunc(http.MethodGet, "/v1/following/:id", app.getFollowingHandler)

	// gallery
	router.HandlerFunc(http.MethodGet, "/v1/gallery", app.requireUser(app.listImagesHandler))
	router.HandlerFunc(http.MethodPost, "/v1/gallery", app.requireUser(app.uploadImageHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/gallery/:id", app.requireUser(app.deleteImageHandler))

	// content assist
	router.HandlerFunc(http.MethodPost, "/v1/ai/generate", app.requireUser(app.generateDraftHandler))
	router.HandlerFunc(http.MethodPost, "/v1/ai/summarize", app.requireUser(app.summarizeHandler))

	return traced(app.metrics.instrument(app.recoverPanic(app.enableCORS(app.rateLimit(app.logRequest(app.authenticate(router)))))))
}
