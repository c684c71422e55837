package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// ReviewHandler provides HTTP handlers for reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler constructs a handler with the provided service.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRouter registers review routes on the given router.
func ReviewRouter(r chi.Router, reviewService *services.ReviewService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewReviewHandler(reviewService)

	r.With(authMiddleware).Post("/", handler.Create)
	r.Get("/provider/{providerID}", handler.ListByProvider)
}

// Create stores a review for a completed booking owned by the
// authenticated user. One review per booking; reviews are immutable.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ReviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.BookingID < 1 {
		writeError(w, http.StatusBadRequest, "booking_id is required")
		return
	}

	review, err := h.reviewService.Create(r.Context(), types.Review{
		BookingID: req.BookingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrInvalidRating),
			errors.Is(err, services.ErrBookingNotCompleted),
			errors.Is(err, store.ErrDuplicateReview):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotBookingOwner):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create review")
		}
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "providerID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reviews, err := h.reviewService.ListByProvider(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	if reviews == nil {
		reviews = []types.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

type ReviewCreateRequest struct {
	BookingID int    `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
