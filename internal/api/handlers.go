// Package api exposes HTTP handlers for the activities directory.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"example.com/activities/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux. The static front-end is served
// from staticDir; the root path redirects to its entry point.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/", h.enrollment)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.HandleFunc("/healthz", healthz)
	mux.HandleFunc("/", root)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// root redirects to the static front-end entry point.
func root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	catalog, err := h.service.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list activities")
		return
	}

	resp := make(map[string]ActivityView, len(catalog))
	for name, activity := range catalog {
		resp[name] = toActivityView(activity)
	}
	writeJSON(w, http.StatusOK, resp)
}

// enrollment dispatches /activities/{name}/signup and /activities/{name}/unregister.
func (h *Handler) enrollment(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	idx := strings.LastIndex(rest, "/")
	if idx <= 0 {
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
		return
	}

	name, err := url.PathUnescape(rest[:idx])
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid activity name")
		return
	}
	action := rest[idx+1:]

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing email parameter")
		return
	}

	switch action {
	case "signup":
		if err := h.service.SignUp(r.Context(), name, email); err != nil {
			writeServiceError(w, err, "Failed to sign up student")
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("Signed up %s for %s", email, name),
		})
	case "unregister":
		if err := h.service.Unregister(r.Context(), name, email); err != nil {
			writeServiceError(w, err, "Failed to remove student")
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("Removed %s from %s", email, name),
		})
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
	}
}

// MessageResponse confirms a successful enrollment change.
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityView exposes an activity's details without repeating its name,
// which is the response map key.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func toActivityView(activity domain.Activity) ActivityView {
	participants := activity.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     activity.Description,
		Schedule:        activity.Schedule,
		MaxParticipants: activity.MaxParticipants,
		Participants:    participants,
	}
}

// writeServiceError maps domain errors to HTTP status codes. Transient store
// failures get their own 503 so callers can tell them from domain rejections.
func writeServiceError(w http.ResponseWriter, err error, serverDetail string) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Activity not found")
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		writeError(w, http.StatusBadRequest, "already_signed_up", "Student already signed up")
	case errors.Is(err, domain.ErrNotEnrolled):
		writeError(w, http.StatusBadRequest, "not_registered", "Student is not registered for this activity")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "activity store unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", serverDetail)
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
