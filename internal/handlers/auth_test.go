package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/homebuddy/apiserver/internal/auth"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

type authTestEnv struct {
	server    *httptest.Server
	users     *fakeUserRepo
	providers *fakeProviderRepo
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	users := newFakeUserRepo()
	providers := newFakeProviderRepo()

	router := chi.NewRouter()
	router.Route("/api/auth", func(r chi.Router) {
		AuthRouter(r, services.NewUserService(users), services.NewProviderService(providers), testJWTSecret)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &authTestEnv{server: server, users: users, providers: providers}
}

func (e *authTestEnv) addUser(t *testing.T, name, email, phone, password, role string) types.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	user, err := e.users.Create(context.Background(), types.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Role:         role,
		PasswordHash: hashed,
	})
	require.NoError(t, err)
	return user
}

func (e *authTestEnv) addProvider(t *testing.T, fullName, email, password string, userID *int) types.Provider {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	provider, err := e.providers.Create(context.Background(), types.Provider{
		UserID:       userID,
		FullName:     fullName,
		Email:        email,
		ServiceID:    1,
		PasswordHash: hashed,
	})
	require.NoError(t, err)
	return provider
}

func (e *authTestEnv) post(t *testing.T, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func (e *authTestEnv) request(t *testing.T, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	env := newAuthTestEnv(t)

	resp, body := env.post(t, "/api/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "Alice@Example.com",
		"password": "alicepass1",
		"phone":    "0712345678",
		"address":  "1 Main Street",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"], "registration normalizes email")

	// Case-insensitive: registered mixed-case, logs in lowercase.
	resp, body = env.post(t, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "alicepass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user", body["role"])
	assert.NotEmpty(t, body["access_token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addUser(t, "Bob", "bob@example.com", "0700000001", "bobpass99", types.RoleUser)

	resp, body := env.post(t, "/api/auth/register", map[string]string{
		"name":     "Bob Again",
		"email":    "BOB@example.com",
		"password": "otherpass",
		"phone":    "0700000002",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "email")
}

func TestRegisterDuplicatePhone(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addUser(t, "Bob", "bob@example.com", "0700000001", "bobpass99", types.RoleUser)

	resp, body := env.post(t, "/api/auth/register", map[string]string{
		"name":     "Carol",
		"email":    "carol@example.com",
		"password": "carolpass",
		"phone":    "0700000001",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "phone")
}

func TestLoginWrongPassword(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addUser(t, "Bob", "bob@example.com", "0700000001", "bobpass99", types.RoleUser)

	resp, _ := env.post(t, "/api/auth/login", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnifiedLoginHardcodedAdmin(t *testing.T) {
	env := newAuthTestEnv(t)
	// No table rows at all: the admin pair must still win.

	resp, body := env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "admin@homebuddy.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, redirectAdmin, body["redirect"])
	assert.NotEmpty(t, body["access_token"])
}

func TestUnifiedLoginUserTable(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.addUser(t, "Alice", "alice@example.com", "0712345678", "alicepass1", types.RoleUser)

	resp, body := env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "ALICE@example.com",
		"password": "alicepass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, float64(user.ID), body["user_id"])
	assert.Equal(t, redirectUser, body["redirect"])
	assert.NotContains(t, body, "provider_id")
}

func TestUnifiedLoginProviderRoleAttachesProviderID(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.addUser(t, "Pat", "pat@example.com", "0712399999", "patpass00", types.RoleProvider)
	provider := env.addProvider(t, "Pat Plumbing", "pat@plumbing.example", "patpass00", &user.ID)

	resp, body := env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "pat@example.com",
		"password": "patpass00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "provider", body["role"])
	assert.Equal(t, float64(provider.ID), body["provider_id"])
	assert.Equal(t, redirectProvider, body["redirect"])
}

func TestUnifiedLoginProviderTableCaseSensitive(t *testing.T) {
	env := newAuthTestEnv(t)
	provider := env.addProvider(t, "Dana Cleaning", "Dana@Cleaning.example", "danapass11", nil)

	// Exact-case email resolves through the providers table.
	resp, body := env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "Dana@Cleaning.example",
		"password": "danapass11",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "provider", body["role"])
	assert.Equal(t, float64(provider.ID), body["provider_id"])

	// A case variation must NOT match: provider lookup is exact-case.
	resp, body = env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "dana@cleaning.example",
		"password": "danapass11",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["detail"])
}

func TestUnifiedLoginUserTableWinsOverProvider(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.addUser(t, "Shared", "shared@example.com", "0700000022", "userpass22", types.RoleUser)
	env.addProvider(t, "Shared Provider", "shared@example.com", "provpass33", nil)

	resp, body := env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "shared@example.com",
		"password": "userpass22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, float64(user.ID), body["user_id"])
}

func TestUnifiedLoginInvalidCredentials(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addUser(t, "Alice", "alice@example.com", "0712345678", "alicepass1", types.RoleUser)

	resp, body := env.post(t, "/api/auth/unified_login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	// A single message regardless of which store missed.
	assert.Equal(t, "invalid email or password", body["detail"])
}

func TestProviderLoginLegacyEndpoint(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.addUser(t, "Pat", "pat@example.com", "0712399999", "patpass00", types.RoleProvider)
	provider := env.addProvider(t, "Pat Plumbing", "pat@plumbing.example", "provpass77", &user.ID)

	resp, body := env.post(t, "/api/auth/provider/login", map[string]string{
		"email":    "pat@plumbing.example",
		"password": "provpass77",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(provider.ID), body["provider_id"])
	assert.Equal(t, float64(user.ID), body["user_id"])
	assert.Equal(t, "Pat Plumbing", body["full_name"])
}

func TestProfileRoundTrip(t *testing.T) {
	env := newAuthTestEnv(t)

	resp, _ := env.post(t, "/api/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "alicepass1",
		"phone":    "0712345678",
		"address":  "1 Main Street",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.post(t, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "alicepass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["access_token"].(string)

	resp, body = env.request(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "0712345678", body["phone"])

	resp, body = env.request(t, http.MethodPut, "/api/auth/profile", token, map[string]string{
		"name":    "Alice",
		"email":   "alice@example.com",
		"phone":   "0798765432",
		"address": "1 Main Street",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0798765432", body["phone"])

	resp, body = env.request(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0798765432", body["phone"])
}

func TestProfileRequiresToken(t *testing.T) {
	env := newAuthTestEnv(t)

	resp, _ := env.request(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.request(t, http.MethodGet, "/api/auth/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Profile updates do not re-check email uniqueness; a collision with
// another account currently succeeds. This pins the observed behavior.
func TestProfileUpdateDuplicateEmailSucceeds(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addUser(t, "Bob", "bob@example.com", "0700000001", "bobpass99", types.RoleUser)
	alice := env.addUser(t, "Alice", "alice@example.com", "0712345678", "alicepass1", types.RoleUser)

	token, err := auth.IssueToken("2", types.RoleUser, []byte(testJWTSecret), auth.DefaultTokenTTL)
	require.NoError(t, err)

	resp, body := env.request(t, http.MethodPut, "/api/auth/profile", token, map[string]string{
		"name":    alice.Name,
		"email":   "bob@example.com",
		"phone":   alice.Phone,
		"address": alice.Address,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bob@example.com", body["email"])
}

func TestRequireRole(t *testing.T) {
	router := chi.NewRouter()
	router.With(RequireAuth(testJWTSecret), RequireRole(types.RoleAdmin)).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	adminToken, err := auth.IssueToken("admin", types.RoleAdmin, []byte(testJWTSecret), auth.DefaultTokenTTL)
	require.NoError(t, err)
	userToken, err := auth.IssueToken("1", types.RoleUser, []byte(testJWTSecret), auth.DefaultTokenTTL)
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"admin allowed", adminToken, http.StatusOK},
		{"user forbidden", userToken, http.StatusForbidden},
		{"anonymous unauthorized", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, server.URL+"/admin", nil)
			require.NoError(t, err)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestListUsers(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addUser(t, "Alice", "alice@example.com", "0712345678", "alicepass1", types.RoleUser)
	env.addUser(t, "Bob", "bob@example.com", "0700000001", "bobpass99", types.RoleUser)

	resp, err := http.Get(env.server.URL + "/api/auth/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []types.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)
}
