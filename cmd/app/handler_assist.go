package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/quillpost/internal/common"
)

type draftRequest struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
}

func (app *application) assistErrorResponse(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var validationErr common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr)
	default:
		app.serverErrorMessageResponse(w, r, err, failure)
	}
}

func (app *application) generateDraftHandler(w http.ResponseWriter, r *http.Request) {
	if app.assistService == nil {
		app.serverErrorMessageResponse(w, r, errors.New("text generation is not configured"), "Generation failed")
		return
	}

	var input draftRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	draft, err := app.assistService.Draft(r.Context(), input.Topic, input.Keywords)
	if err != nil {
		app.assistErrorResponse(w, r, err, "Generation failed")
		return
	}

	err = app.writeJSON(w, http.StatusOK, draft, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type summarizeRequest struct {
	Content string `json:"content"`
}

func (app *application) summarizeHandler(w http.ResponseWriter, r *http.Request) {
	var input summarizeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if app.assistService == nil {
		app.serverErrorMessageResponse(w, r, errors.New("text generation is not configured"), "Failed to generate summary")
		return
	}

	summary, err := app.assistService.Summarize(r.Context(), input.Content)
	if err != nil {
		app.assistErrorResponse(w, r, err, "Failed to generate summary")
		return
	}

	err = app.writeJSON(w, http.StatusOK, summary, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
