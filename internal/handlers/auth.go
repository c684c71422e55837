package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/homebuddy/apiserver/internal/auth"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// Hardcoded admin credentials checked ahead of both account tables.
// Legacy behavior kept for frontend compatibility: the comparison is
// plaintext and bypasses the users table entirely.
const (
	adminEmail    = "admin@homebuddy.com"
	adminPassword = "admin123"
	adminSubject  = "admin"
)

// Role-specific redirect hints returned to the frontend on login.
const (
	redirectUser     = "Frontend/html/user/dashboard.html"
	redirectProvider = "Frontend/html/provider/provider-dashboard.html"
	redirectAdmin    = "Frontend/html/admin/admin-dashboard.html"
)

// AuthHandler provides registration, login, and profile endpoints.
//
// Login resolves identity across three credential stores in strict
// priority order: the hardcoded admin pair, the users table
// (case-insensitive email), then the providers table (exact-case
// email). The case asymmetry between the two table lookups is
// long-standing observed behavior and is kept as is.
type AuthHandler struct {
	userService     *services.UserService
	providerService *services.ProviderService
	secret          []byte
	tokenTTL        time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, providerService *services.ProviderService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userService:     userService,
		providerService: providerService,
		secret:          []byte(jwtSecret),
		tokenTTL:        auth.DefaultTokenTTL,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, providerService *services.ProviderService, jwtSecret string) {
	handler := NewAuthHandler(userService, providerService, jwtSecret)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/unified_login", handler.UnifiedLogin)
	r.Post("/provider/login", handler.ProviderLogin)
	r.Get("/users", handler.ListUsers)
	r.With(handler.RequireAuth).Get("/profile", handler.GetProfile)
	r.With(handler.RequireAuth).Put("/profile", handler.UpdateProfile)
}

// RequireAuth enforces JWT authentication and injects claims into context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return requireAuth(h.secret)(next)
}

// RequireAuth constructs auth middleware for other routers.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return requireAuth([]byte(jwtSecret))
}

// RequireRole constructs middleware that rejects tokens issued for a
// different role. Must be stacked after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !strings.EqualFold(claims.Role, role) {
				writeError(w, http.StatusForbidden, role+" access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := auth.ParseToken(tokenString, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	if _, err := h.userService.GetByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, store.ErrDuplicateEmail.Error())
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if _, err := h.userService.GetByPhone(r.Context(), req.Phone); err == nil {
		writeError(w, http.StatusBadRequest, store.ErrDuplicatePhone.Error())
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

	user, err := h.userService.Create(r.Context(), types.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         types.RoleUser,
		PasswordHash: hashed,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
	})
}

// Login authenticates against the users table only. Kept as a distinct
// entry point for backward compatibility; UnifiedLogin is preferred.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	token, err := h.issueToken(strconv.Itoa(user.ID), types.RoleUser)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		UserName:    user.Name,
		Email:       user.Email,
		Role:        types.RoleUser,
	})
}

// UnifiedLogin resolves credentials across the admin pair, the users
// table, and the providers table, in that order. The first matching
// store wins; a miss in all three yields a single 401 that does not
// identify which stores were consulted.
func (h *AuthHandler) UnifiedLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	// 1. Hardcoded admin.
	if req.Email == adminEmail && req.Password == adminPassword {
		token, err := h.issueToken(adminSubject, types.RoleAdmin)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create token")
			return
		}
		writeJSON(w, http.StatusOK, UnifiedLoginResponse{
			Message:     "Login successful",
			AccessToken: token,
			TokenType:   "bearer",
			Role:        types.RoleAdmin,
			Redirect:    redirectAdmin,
		})
		return
	}

	// 2. Users table, normalized email.
	user, err := h.userService.GetByEmail(r.Context(), normalizeEmail(req.Email))
	switch {
	case err == nil:
		if auth.CheckPassword(req.Password, user.PasswordHash) {
			h.respondUserLogin(w, r, user)
			return
		}
	case !errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	// 3. Providers table, exact-case email.
	provider, err := h.providerService.GetByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		if auth.CheckPassword(req.Password, provider.PasswordHash) {
			h.respondProviderUnifiedLogin(w, provider)
			return
		}
	case !errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	writeError(w, http.StatusUnauthorized, "invalid email or password")
}

func (h *AuthHandler) respondUserLogin(w http.ResponseWriter, r *http.Request, user types.User) {
	token, err := h.issueToken(strconv.Itoa(user.ID), user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	redirect := redirectUser
	switch user.Role {
	case types.RoleProvider:
		redirect = redirectProvider
	case types.RoleAdmin:
		redirect = redirectAdmin
	}

	resp := UnifiedLoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Redirect:    redirect,
	}

	if user.Role == types.RoleProvider {
		if provider, err := h.providerService.GetByUserID(r.Context(), user.ID); err == nil {
			resp.ProviderID = provider.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) respondProviderUnifiedLogin(w http.ResponseWriter, provider types.Provider) {
	token, err := h.issueToken(strconv.Itoa(provider.ID), types.RoleProvider)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	resp := UnifiedLoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "bearer",
		Role:        types.RoleProvider,
		ProviderID:  provider.ID,
		Name:        provider.FullName,
		Email:       provider.Email,
		Redirect:    redirectProvider,
	}
	if provider.UserID != nil {
		resp.UserID = *provider.UserID
	}
	writeJSON(w, http.StatusOK, resp)
}

// ProviderLogin authenticates against the providers table only (legacy
// entry point). Email matching is exact-case, as it has always been.
func (h *AuthHandler) ProviderLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	provider, err := h.providerService.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if !auth.CheckPassword(req.Password, provider.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.issueToken(strconv.Itoa(provider.ID), types.RoleProvider)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	resp := ProviderLoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "bearer",
		ProviderID:  provider.ID,
		FullName:    provider.FullName,
	}
	if provider.UserID != nil {
		resp.UserID = *provider.UserID
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListUsers returns all users without pagination (legacy admin view).
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []types.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// GetProfile returns the user record for the authenticated subject.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile overwrites name, email, phone, and address for the
// authenticated user. Email is normalized but uniqueness is not
// re-checked on update, matching the registration-only check the API
// has always had.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := subjectID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = normalizeEmail(req.Email)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Address = req.Address

	updated, err := h.userService.Update(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *AuthHandler) issueToken(subject, role string) (string, error) {
	return auth.IssueToken(subject, role, h.secret, h.tokenTTL)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type UnifiedLoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	UserID      int    `json:"user_id,omitempty"`
	ProviderID  int    `json:"provider_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Redirect    string `json:"redirect"`
}

type ProviderLoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ProviderID  int    `json:"provider_id"`
	UserID      int    `json:"user_id"`
	FullName    string `json:"full_name"`
}

type ProfileUpdateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
