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

// ProviderHandler provides HTTP handlers for provider profiles.
type ProviderHandler struct {
	providerService *services.ProviderService
	catalogService  *services.CatalogService
	userService     *services.UserService
}

// NewProviderHandler constructs a handler with the provided services.
func NewProviderHandler(providerService *services.ProviderService, catalogService *services.CatalogService, userService *services.UserService) *ProviderHandler {
	return &ProviderHandler{
		providerService: providerService,
		catalogService:  catalogService,
		userService:     userService,
	}
}

// ProviderRouter registers provider routes on the given router.
func ProviderRouter(r chi.Router, providerService *services.ProviderService, catalogService *services.CatalogService, userService *services.UserService) {
	handler := NewProviderHandler(providerService, catalogService, userService)

	r.Post("/register", handler.Register)
	r.Get("/", handler.List)
	r.Get("/{providerID}", handler.Get)
}

// Register creates a provider profile. When user_id is supplied the
// linked user account is promoted to the provider role.
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req ProviderRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	// Provider emails are stored exactly as given; only whitespace is removed.
	req.Email = strings.TrimSpace(req.Email)
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.ServiceID < 1 {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	if _, err := h.catalogService.Get(r.Context(), req.ServiceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown service")
			return
		}
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if _, err := h.providerService.GetByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, store.ErrDuplicateEmail.Error())
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	provider, err := h.providerService.Create(r.Context(), types.Provider{
		UserID:       req.UserID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		ServiceID:    req.ServiceID,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if req.UserID != nil {
		h.promoteLinkedUser(r, *req.UserID)
	}

	writeJSON(w, http.StatusCreated, ProviderRegisterResponse{
		Message:    "Provider registered successfully",
		ProviderID: provider.ID,
		FullName:   provider.FullName,
		Email:      provider.Email,
	})
}

// promoteLinkedUser flips the linked account's role to provider so that
// unified login resolves it through the users table with a provider_id.
// Best-effort: a failure leaves the standalone provider login working.
func (h *ProviderHandler) promoteLinkedUser(r *http.Request, userID int) {
	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		return
	}
	if user.Role == types.RoleUser {
		user.Role = types.RoleProvider
		_, _ = h.userService.Update(r.Context(), user)
	}
}

// List returns providers, optionally filtered by ?service_id.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	serviceID := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("service_id")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid service_id")
			return
		}
		serviceID = parsed
	}

	providers, err := h.providerService.List(r.Context(), serviceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list providers")
		return
	}
	if providers == nil {
		providers = []types.Provider{}
	}
	writeJSON(w, http.StatusOK, providers)
}

func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "providerID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider, err := h.providerService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "provider not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch provider")
		return
	}

	writeJSON(w, http.StatusOK, provider)
}

type ProviderRegisterRequest struct {
	UserID    *int   `json:"user_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	ServiceID int    `json:"service_id"`
}

type ProviderRegisterResponse struct {
	Message    string `json:"message"`
	ProviderID int    `json:"provider_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
}
