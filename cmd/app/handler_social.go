package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/socialservice"
)

func (app *application) toggleFollowHandler(w http.ResponseWriter, r *http.Request) {
	followingID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	followerID := app.currentUserID(r)

	following, err := app.socialService.ToggleFollow(r.Context(), followerID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, socialservice.ErrSelfFollow):
			app.writeErrorResponse(w, r, http.StatusBadRequest, "You cannot follow yourself")
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "User not found")
		default:
			app.serviceErrorResponse(w, r, err, "")
		}
		return
	}
	app.metrics.recordToggle("follow", following)

	if !following {
		err = app.writeJSON(w, http.StatusOK, envelope{"message": "Unfollowed successfully"}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.publishEvent(r, common.UserFollowedKey, common.UserFollowedEvent{FollowerID: followerID, FollowingID: followingID})

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "Followed successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) checkFollowHandler(w http.ResponseWriter, r *http.Request) {
	followerID, ok := app.readIntQuery(r, "followerId")
	if !ok {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid request")
		return
	}

	followingID, ok := app.readIntQuery(r, "followingId")
	if !ok {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid request")
		return
	}

	following, err := app.socialService.IsFollowing(r.Context(), followerID, followingID)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"isFollowing": following}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) countFollowersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	count, err := app.socialService.CountFollowers(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"followersCount": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getFollowingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	following, err := app.socialService.GetFollowing(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err, "")
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"following": following}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
