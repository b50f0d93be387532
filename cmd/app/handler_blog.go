package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sushihentaime/quillpost/internal/blogservice"
)

const blogForbidden = "You can only modify your own blogs"

func (app *application) blogErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blogservice.ErrAuthorForeignKey):
		app.notFoundMessageResponse(w, r, "User not found")
	case errors.Is(err, blogservice.ErrEmptySearch):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Query parameter 'q' is required")
	default:
		app.serviceErrorResponse(w, r, err, blogForbidden)
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.AuthorID = app.currentUserID(r)

	blog, err := app.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPublicBlogsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.GetPublicBlogs(r.Context(), limit, offset)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogsByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	blogs, err := app.blogService.GetBlogsByAuthor(r.Context(), id)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input blogservice.UpdateBlogRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.ID = id
	input.ActorID = app.currentUserID(r)

	blog, err := app.blogService.UpdateBlog(r.Context(), &input)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Blog updated successfully", "blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (app *application) updateBlogStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input updateStatusRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateStatus(r.Context(), id, app.currentUserID(r), input.Status)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Blog status updated successfully", "blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), id, app.currentUserID(r))
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Blog deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) searchBlogsHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		app.blogErrorResponse(w, r, blogservice.ErrEmptySearch)
		return
	}

	blogs, err := app.blogService.SearchBlogs(r.Context(), q)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) blogOverviewHandler(w http.ResponseWriter, r *http.Request) {
	items, err := app.blogService.GetOverview(r.Context(), app.currentUserID(r))
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": items}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
