package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/quillpost/internal/common"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeErrorEnvelope(w, r, status, envelope{"error": message})
}

func (app *application) writeErrorEnvelope(w http.ResponseWriter, r *http.Request, status int, env envelope) {
	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.serverErrorMessageResponse(w, r, err, "the server encountered a problem and could not process your request")
}

// serverErrorMessageResponse logs err and answers 500 with message. The raw error is only exposed in development.
func (app *application) serverErrorMessageResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.logError(r, err)

	env := envelope{"error": message}
	if app.config != nil && app.config.isDevelopment() {
		env["details"] = err.Error()
	}

	app.writeErrorEnvelope(w, r, http.StatusInternalServerError, env)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, err common.ValidationError) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Message())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (app *application) notFoundMessageResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.writeErrorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid or missing authentication token")
}

func (app *application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "you must be authenticated to access this resource")
}

func (app *application) forbiddenErrorResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.writeErrorResponse(w, r, http.StatusForbidden, message)
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// serviceErrorResponse maps the shared service errors onto status codes. forbidden is the message used for
// ErrForbidden, which differs per resource.
func (app *application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error, forbidden string) {
	var validationErr common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr)
	case errors.Is(err, common.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, common.ErrForbidden):
		app.forbiddenErrorResponse(w, r, forbidden)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
