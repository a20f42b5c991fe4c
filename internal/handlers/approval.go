package handlers

import (
	"approval-api/internal/notifier"
	"approval-api/internal/services"
	"approval-api/pkg/apiErrors"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

const BasePath = "/api/approvals"

type ApprovalHandlers struct {
	service *services.ApprovalService
}

func NewApprovalHandlers(service *services.ApprovalService) *ApprovalHandlers {
	return &ApprovalHandlers{service: service}
}

type createApprovalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RequestedBy string `json:"requestedBy"`
}

type eventResponse struct {
	ApprovalID int       `json:"approvalId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	At         time.Time `json:"at"`
}

// Register mounts the approval routes under BasePath.
// /events and /status/{status} are registered before /{id} so they are not taken as ids.
func (h *ApprovalHandlers) Register(router *mux.Router) {
	r := router.PathPrefix(BasePath).Subrouter()
	r.HandleFunc("", h.List).Methods(http.MethodGet)
	r.HandleFunc("/", h.List).Methods(http.MethodGet)
	r.HandleFunc("", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/events", h.Events).Methods(http.MethodGet)
	r.HandleFunc("/status/{status}", h.ListByStatus).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/{id}/approve", h.Approve).Methods(http.MethodPut)
	r.HandleFunc("/{id}/reject", h.Reject).Methods(http.MethodPut)
}

func (h *ApprovalHandlers) List(w http.ResponseWriter, r *http.Request) {
	approvals, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, err)
		return
	}
	WriteJSON(w, approvals, http.StatusOK)
}

func (h *ApprovalHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	approval, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	WriteJSON(w, approval, http.StatusOK)
}

func (h *ApprovalHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, fmt.Errorf("%w: %v", apiErrors.ErrInvalidBody, err))
		return
	}

	approval, err := h.service.Create(r.Context(), req.Title, req.Description, req.RequestedBy)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, err)
		return
	}
	WriteJSON(w, approval, http.StatusCreated)
}

func (h *ApprovalHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	approval, err := h.service.Approve(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	WriteJSON(w, approval, http.StatusOK)
}

func (h *ApprovalHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	approval, err := h.service.Reject(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	WriteJSON(w, approval, http.StatusOK)
}

func (h *ApprovalHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	removed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, err)
		return
	}
	if !removed {
		WriteText(w, fmt.Sprintf("Approval %d not found", id), http.StatusNotFound)
		return
	}
	WriteText(w, fmt.Sprintf("Approval %d deleted successfully", id), http.StatusOK)
}

func (h *ApprovalHandlers) ListByStatus(w http.ResponseWriter, r *http.Request) {
	approvals, err := h.service.ListByStatus(r.Context(), mux.Vars(r)["status"])
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, err)
		return
	}
	WriteJSON(w, approvals, http.StatusOK)
}

// Events lists status transitions, optionally from ?since=<RFC3339>.
func (h *ApprovalHandlers) Events(w http.ResponseWriter, r *http.Request) {
	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, fmt.Errorf("invalid since: %w", err))
			return
		}
		since = parsed
	}

	events, err := h.service.Events(r.Context(), since)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, err)
		return
	}
	WriteJSON(w, toEventResponses(events), http.StatusOK)
}

func toEventResponses(events []notifier.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ApprovalID: e.ApprovalID,
			From:       string(e.From),
			To:         string(e.To),
			At:         e.At.UTC(),
		})
	}
	return out
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, apiErrors.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apiErrors.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, err)
		return
	}
	WriteError(w, r, http.StatusInternalServerError, err)
}
