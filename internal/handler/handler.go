// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/builderstack/appserver/internal/model"
)

// Handler serves the small fixed API used by the frontend.
type Handler struct {
	logger   *slog.Logger
	codeHTML string
}

// New creates a new Handler instance.
func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger}

	html, err := renderCodeSample(CodeSample)
	if err != nil {
		logger.Warn("failed to render code sample", slog.String("error", err.Error()))
	}
	h.codeHTML = html

	return h
}

// Hello is a simple hello endpoint for testing.
// GET /api/hello
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Go!",
	}
	writeJSON(w, http.StatusOK, response)
}

// UserInfo returns the caller identity forwarded by the Apps proxy,
// or the local development identity when none was forwarded.
// GET /api/user-info
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get(model.HeaderForwardedEmail)
	username := r.Header.Get(model.HeaderForwardedUser)

	h.logger.DebugContext(r.Context(), "user info headers",
		slog.Bool("email_present", email != ""),
		slog.Bool("username_present", username != ""),
	)

	if email == "" && username == "" {
		h.logger.InfoContext(r.Context(), "headers not found, using default local_user")
	}

	writeJSON(w, http.StatusOK, model.NewUserInfo(email, username))
}

// CodeSampleResponse is the body of the code sample endpoint.
type CodeSampleResponse struct {
	Code string `json:"code"`
	HTML string `json:"html,omitempty"`
}

// CodeSample returns the backend snippet shown in the frontend.
// With ?format=html the rendered, sanitized HTML is included too.
// GET /api/code-sample
func (h *Handler) CodeSample(w http.ResponseWriter, r *http.Request) {
	response := CodeSampleResponse{Code: CodeSample}
	if r.URL.Query().Get("format") == "html" {
		response.HTML = h.codeHTML
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Not Found"})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, detailResponse{Detail: "Method Not Allowed"})
}

// detailResponse is the error body shape the frontend expects.
type detailResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
