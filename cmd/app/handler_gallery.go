package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/quillpost/internal/galleryservice"
)

const imageForbidden = "You can only delete your own images"

func (app *application) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, galleryservice.MaxUploadSize+1<<20)

	err := r.ParseMultipartForm(galleryservice.MaxUploadSize)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			app.writeErrorResponse(w, r, http.StatusBadRequest, "File must not be larger than 10 MB")
		default:
			app.writeErrorResponse(w, r, http.StatusBadRequest, "File is required")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	img, err := app.galleryService.Upload(r.Context(), app.currentUserID(r), header.Filename, file, header.Size)
	if err != nil {
		app.serviceErrorResponse(w, r, err, imageForbidden)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, img, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listImagesHandler(w http.ResponseWriter, r *http.Request) {
	images, err := app.galleryService.List(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err, imageForbidden)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"images": images}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.galleryService.Delete(r.Context(), id, app.currentUserID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err, imageForbidden)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Image deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
