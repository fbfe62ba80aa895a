package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/homehub/household-api/internal/api/handler"
	"github.com/homehub/household-api/internal/api/middleware"
	"github.com/homehub/household-api/internal/core/domain"
	"github.com/homehub/household-api/internal/core/service"
)

// memUserRepo mirrors the Mongo repository's uniqueness and not-found
// semantics in memory.
type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindHouseholdByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok && u.Role == domain.RoleHousehold {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindAllHousehold(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleHousehold {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameConflict
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	stored := clone
	r.users[clone.ID] = &stored
	return &clone, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return nil, domain.ErrUsernameConflict
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// newTestServer wires the real services, middleware chain, and error
// translator against the in-memory repository.
func newTestServer(t *testing.T, repo *memUserRepo) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	tokens := service.NewTokenService("test-secret", time.Hour, 7*24*time.Hour)
	authService := service.NewAuthService(repo, tokens)
	userService := service.NewUserService(repo, nil, nil, "1234", zerolog.Nop())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authenticate := middleware.Authenticate(authService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	ownerOrAdmin := middleware.RequireOwnershipOrAdmin()

	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.POST("/api/auth/logout", authHandler.Logout, authenticate)
	e.GET("/api/internal/verify", authHandler.Verify, authenticate)

	users := e.Group("/api/household-users", authenticate)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Get, ownerOrAdmin)
	users.PUT("/:id/username", userHandler.UpdateUsername, ownerOrAdmin)
	users.PUT("/:id/password", userHandler.UpdatePassword, ownerOrAdmin)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	e.POST("/api/admin/reset-password", userHandler.ResetAdminPassword)

	return e
}

func seedAccount(t *testing.T, repo *memUserRepo, username, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, password string) (access, refresh string) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	var pair map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("login response: %v", err)
	}
	return pair["accessToken"], pair["refreshToken"]
}

func TestFlow_LoginAndVerify(t *testing.T) {
	repo := newMemUserRepo()
	admin := seedAccount(t, repo, "admin", "admin123", domain.RoleAdmin)
	e := newTestServer(t, repo)

	access, _ := login(t, e, "admin", "admin123")

	rec := doJSON(e, http.MethodGet, "/api/internal/verify", access, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", rec.Code)
	}
	var identity map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &identity)
	if identity["id"] != admin.ID || identity["username"] != "admin" || identity["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %v", identity)
	}
}

func TestFlow_LoginFailuresIndistinguishable(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(t, repo, "admin", "admin123", domain.RoleAdmin)
	e := newTestServer(t, repo)

	wrongPass := doJSON(e, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope"}`)
	unknown := doJSON(e, http.MethodPost, "/api/auth/login", "", `{"username":"ghost","password":"nope"}`)

	if wrongPass.Code != http.StatusUnprocessableEntity || unknown.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for both, got %d and %d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("failure responses must be identical: %q vs %q", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestFlow_LoginMissingField(t *testing.T) {
	e := newTestServer(t, newMemUserRepo())

	rec := doJSON(e, http.MethodPost, "/api/auth/login", "", `{"username":"admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}
}

func TestFlow_RefreshRotatesPair(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(t, repo, "mark", "pass123", domain.RoleHousehold)
	e := newTestServer(t, repo)

	access, refresh := login(t, e, "mark", "pass123")

	rec := doJSON(e, http.MethodPost, "/api/auth/refresh", "", fmt.Sprintf(`{"refreshToken":%q}`, refresh))
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d", rec.Code)
	}
	var pair map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &pair)
	if pair["accessToken"] == "" || pair["accessToken"] == access {
		t.Fatalf("expected a fresh access token")
	}

	bad := doJSON(e, http.MethodPost, "/api/auth/refresh", "", `{"refreshToken":"garbage"}`)
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage refresh token, got %d", bad.Code)
	}
}

func TestFlow_ProtectedRouteRequiresToken(t *testing.T) {
	repo := newMemUserRepo()
	e := newTestServer(t, repo)

	rec := doJSON(e, http.MethodGet, "/api/household-users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with no token, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/household-users", "not-a-valid-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", rec.Code)
	}
}

func TestFlow_DeleteRequiresAdmin(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(t, repo, "admin", "admin123", domain.RoleAdmin)
	mark := seedAccount(t, repo, "mark", "pass123", domain.RoleHousehold)
	e := newTestServer(t, repo)

	markToken, _ := login(t, e, "mark", "pass123")
	adminToken, _ := login(t, e, "admin", "admin123")

	// Household user cannot delete, not even themselves.
	rec := doJSON(e, http.MethodDelete, "/api/household-users/"+mark.ID, markToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for household delete, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/household-users/"+mark.ID, adminToken, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin delete, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/household-users/"+mark.ID, adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestFlow_OwnershipGate(t *testing.T) {
	repo := newMemUserRepo()
	mark := seedAccount(t, repo, "mark", "pass123", domain.RoleHousehold)
	david := seedAccount(t, repo, "david", "pass123", domain.RoleHousehold)
	e := newTestServer(t, repo)

	markToken, _ := login(t, e, "mark", "pass123")

	// Own resource: allowed without admin role.
	rec := doJSON(e, http.MethodGet, "/api/household-users/"+mark.ID, markToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own resource, got %d", rec.Code)
	}

	// Someone else's resource: forbidden.
	rec = doJSON(e, http.MethodGet, "/api/household-users/"+david.ID, markToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign resource, got %d", rec.Code)
	}
}

func TestFlow_RenameConflictLeavesOriginal(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(t, repo, "admin", "admin123", domain.RoleAdmin)
	mark := seedAccount(t, repo, "mark", "pass123", domain.RoleHousehold)
	seedAccount(t, repo, "david", "pass123", domain.RoleHousehold)
	e := newTestServer(t, repo)

	adminToken, _ := login(t, e, "admin", "admin123")

	rec := doJSON(e, http.MethodPut, "/api/household-users/"+mark.ID+"/username", adminToken, `{"newUsername":"david"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/household-users/"+mark.ID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch after failed rename: %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["username"] != "mark" {
		t.Fatalf("expected username unchanged after conflict, got %q", body["username"])
	}
}

func TestFlow_LogoutUnknownUser(t *testing.T) {
	repo := newMemUserRepo()
	mark := seedAccount(t, repo, "mark", "pass123", domain.RoleHousehold)
	e := newTestServer(t, repo)

	token, _ := login(t, e, "mark", "pass123")

	rec := doJSON(e, http.MethodPost, "/api/auth/logout", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 logout, got %d", rec.Code)
	}

	// Token still names "mark" but the account is gone: logout now 404s.
	if err := repo.Delete(context.Background(), mark.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rec = doJSON(e, http.MethodPost, "/api/auth/logout", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for vanished account, got %d", rec.Code)
	}
}

func TestFlow_ResetAdminPassword(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(t, repo, "admin", "admin123", domain.RoleAdmin)
	e := newTestServer(t, repo)

	rec := doJSON(e, http.MethodPost, "/api/admin/reset-password", "", `{"resetCode":"9999","newPassword":"newpass"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for wrong code, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/admin/reset-password", "", `{"resetCode":"1234","newPassword":"newpass"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}

	// The new password works, the old one does not.
	if rec := doJSON(e, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"admin123"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("old password should be rejected, got %d", rec.Code)
	}
	login(t, e, "admin", "newpass")
}
