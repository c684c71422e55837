package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// BookingHandler provides HTTP handlers for bookings.
type BookingHandler struct {
	bookingService  *services.BookingService
	providerService *services.ProviderService
	catalogService  *services.CatalogService
}

// NewBookingHandler constructs a handler with the provided services.
func NewBookingHandler(bookingService *services.BookingService, providerService *services.ProviderService, catalogService *services.CatalogService) *BookingHandler {
	return &BookingHandler{
		bookingService:  bookingService,
		providerService: providerService,
		catalogService:  catalogService,
	}
}

// BookingRouter registers booking routes on the given router.
// All booking routes require authentication.
func BookingRouter(r chi.Router, bookingService *services.BookingService, providerService *services.ProviderService, catalogService *services.CatalogService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewBookingHandler(bookingService, providerService, catalogService)

	r.Use(authMiddleware)
	r.Post("/", handler.Create)
	r.Get("/{bookingID}", handler.Get)
	r.Get("/user/{userID}", handler.ListByUser)
	r.Get("/provider/{providerID}", handler.ListByProvider)
	r.Patch("/{bookingID}/status", handler.UpdateStatus)
}

// Create books a provider for a catalog service. The booking is created
// for the authenticated user in the requested state.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BookingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.ProviderID < 1 || req.ServiceID < 1 || req.ScheduledAt.IsZero() {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	if _, err := h.providerService.GetByID(r.Context(), req.ProviderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown provider")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}
	if _, err := h.catalogService.Get(r.Context(), req.ServiceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown service")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), types.Booking{
		UserID:      userID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookingID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch booking")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := h.bookingService.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []types.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "providerID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := h.bookingService.ListByProvider(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []types.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// UpdateStatus moves a booking along its lifecycle.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookingID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req BookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	booking, err := h.bookingService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

type BookingCreateRequest struct {
	ProviderID  int       `json:"provider_id"`
	ServiceID   int       `json:"service_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}
