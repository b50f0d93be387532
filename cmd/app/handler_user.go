package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/userservice"
)

func (app *application) userErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, userservice.ErrUserNotSynced):
		app.notFoundMessageResponse(w, r, err.Error())
	case errors.Is(err, userservice.ErrDuplicateUsername):
		app.badRequestErrorResponse(w, r, err)
	case errors.Is(err, userservice.ErrInvalidSession):
		app.invalidAuthenticationTokenResponse(w, r)
	default:
		app.serviceErrorResponse(w, r, err, "")
	}
}

func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"user_id": app.currentUserID(r)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user, err := app.userService.GetUserByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "User not found")
		default:
			app.userErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.getIdentityContext(r)

	profile, err := app.userService.GetProfile(r.Context(), identity.ExternalID)
	if err != nil {
		app.userErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, profile, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) syncProfileHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.getIdentityContext(r)

	user, err := app.userService.SyncProfile(r.Context(), identity.Claims)
	if err != nil {
		app.userErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateBioRequest struct {
	Bio string `json:"bio"`
}

func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input updateBioRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.UpdateBio(r.Context(), app.getIdentityContext(r).ExternalID, input.Bio)
	if err != nil {
		app.userErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
