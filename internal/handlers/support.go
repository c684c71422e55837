package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/homebuddy/apiserver/internal/auth"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// SupportHandler provides HTTP handlers for support tickets.
// Opening a ticket is public (an attached bearer token links the ticket
// to the account); administration is admin-only.
type SupportHandler struct {
	supportService *services.SupportService
	secret         []byte
}

// NewSupportHandler constructs a handler with the provided service.
func NewSupportHandler(supportService *services.SupportService, jwtSecret string) *SupportHandler {
	return &SupportHandler{supportService: supportService, secret: []byte(jwtSecret)}
}

// SupportRouter registers support routes on the given router.
func SupportRouter(r chi.Router, supportService *services.SupportService, jwtSecret string, authMiddleware func(http.Handler) http.Handler) {
	handler := NewSupportHandler(supportService, jwtSecret)
	admin := RequireRole(types.RoleAdmin)

	r.Post("/", handler.Open)
	r.With(authMiddleware, admin).Get("/", handler.List)
	r.With(authMiddleware, admin).Patch("/{ticketID}/status", handler.UpdateStatus)
}

// Open creates a support ticket. A valid bearer token is optional and
// only used to associate the ticket with a user account.
func (h *SupportHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req SupportOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Subject == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "subject and message are required")
		return
	}

	ticket := types.SupportTicket{
		Subject: req.Subject,
		Message: req.Message,
	}
	if userID, ok := h.optionalIdentity(r); ok {
		ticket.UserID = &userID
	}

	created, err := h.supportService.Open(r.Context(), ticket)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open ticket")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns all tickets, newest first.
func (h *SupportHandler) List(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.supportService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}
	if tickets == nil {
		tickets = []types.SupportTicket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

// UpdateStatus marks a ticket open or closed.
func (h *SupportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "ticketID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SupportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Status != types.TicketOpen && req.Status != types.TicketClosed {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.supportService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update ticket")
		return
	}

	ticket, err := h.supportService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load ticket")
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// optionalIdentity extracts a numeric subject from a bearer token if
// one is present and valid. Anonymous or invalid tokens are ignored.
func (h *SupportHandler) optionalIdentity(r *http.Request) (int, bool) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return 0, false
	}
	claims, err := auth.ParseToken(tokenString, h.secret)
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

type SupportOpenRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SupportStatusRequest struct {
	Status string `json:"status"`
}
