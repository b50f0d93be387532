package main

import (
	"net/http"

	"github.com/sushihentaime/quillpost/internal/common"
)

const commentForbidden = "You can only delete your own comments"

func (app *application) countLikesHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	total, err := app.engagementService.CountLikes(r.Context(), blogID)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"total_likes": total}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) toggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	liked, err := app.engagementService.ToggleLike(r.Context(), blogID, app.currentUserID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}
	app.metrics.recordToggle("like", liked)

	message := "Unliked successfully"
	if liked {
		message = "Liked successfully"
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": message}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	comments, err := app.engagementService.GetComments(r.Context(), blogID)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input addCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	userID := app.currentUserID(r)

	comment, err := app.engagementService.AddComment(r.Context(), blogID, userID, input.Content)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	app.blogService.InvalidateOverview(comment.BlogAuthorID)
	app.publishEvent(r, common.CommentCreatedKey, common.CommentCreatedEvent{
		CommentID: comment.ID,
		BlogID:    comment.BlogID,
		AuthorID:  comment.BlogAuthorID,
		UserID:    userID,
		Comment:   comment.Comment,
	})

	err = app.writeJSON(w, http.StatusCreated, envelope{
		"message":   "Comment added",
		"commentId": comment.ID,
		"createdAt": comment.CreatedAt,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.engagementService.DeleteComment(r.Context(), id, app.currentUserID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err, commentForbidden)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Comment deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) toggleBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	bookmarked, err := app.engagementService.ToggleBookmark(r.Context(), app.currentUserID(r), blogID)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}
	app.metrics.recordToggle("bookmark", bookmarked)

	message := "Bookmark removed"
	if bookmarked {
		message = "Bookmark added"
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"isBookmarked": bookmarked, "message": message}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) bookmarkStatusHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	bookmarked, err := app.engagementService.IsBookmarked(r.Context(), app.currentUserID(r), blogID)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"isBookmarked": bookmarked}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBookmarksHandler(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := app.engagementService.GetBookmarks(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"bookmarks": bookmarks}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
