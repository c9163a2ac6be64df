package web

// errors.go provides unified error response handling for the web layer.
//
// Errors are logged with full technical details and the request id, then
// returned to the client as a user-facing message from core.MapError: JSON
// for API routes, an HTML page otherwise.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/cardsort/internal/core"
	"github.com/JonMunkholm/cardsort/internal/logging"
	"github.com/JonMunkholm/cardsort/internal/web/templates"
)

var (
	errNoFile      = errors.New("no file provided")
	errInvalidForm = errors.New("invalid upload form")
)

// ErrorResponse is the JSON body of API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a user-friendly response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}
	respondErrorHTML(r.Context(), w, userMsg, statusCode)
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

func respondErrorHTML(ctx context.Context, w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	page := templates.Layout("Error", templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
	render(ctx, w, page, statusCode)
}

// statusFor picks the HTTP status for a pipeline error.
func statusFor(err error) int {
	var pe *core.ParseError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &pe),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, errNoFile),
		errors.Is(err, errInvalidForm),
		errors.Is(err, core.ErrInvalidSort):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnknownVariant):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNothingToExport):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
