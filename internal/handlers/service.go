package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// ServiceHandler provides HTTP handlers for the service catalog.
// Reads are public; writes are admin-only.
type ServiceHandler struct {
	catalogService *services.CatalogService
}

// NewServiceHandler constructs a handler with the provided service.
func NewServiceHandler(catalogService *services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// ServiceRouter registers catalog routes on the given router.
func ServiceRouter(r chi.Router, catalogService *services.CatalogService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewServiceHandler(catalogService)
	admin := RequireRole(types.RoleAdmin)

	r.Get("/", handler.List)
	r.With(authMiddleware, admin).Post("/", handler.Create)
	r.Route("/{serviceID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(authMiddleware, admin).Put("/", handler.Update)
		r.With(authMiddleware, admin).Delete("/", handler.Delete)
	})
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalogService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	if list == nil {
		list = []types.Service{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	service, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch service")
		return
	}

	writeJSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeServiceRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.catalogService.Create(r.Context(), types.Service{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create service")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := decodeServiceRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.catalogService.Update(r.Context(), types.Service{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update service")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete service")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ServiceUpsertRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func decodeServiceRequest(r *http.Request) (ServiceUpsertRequest, error) {
	var req ServiceUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ServiceUpsertRequest{}, errors.New("invalid request")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return ServiceUpsertRequest{}, errors.New("name is required")
	}
	if req.Price < 0 {
		return ServiceUpsertRequest{}, errors.New("invalid price")
	}
	return req, nil
}
