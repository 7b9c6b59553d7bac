package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/middleware"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(NewService(NewMemoryRepo()))
	router := gin.New()
	public := router.Group("/api")
	handler.RegisterPublicRoutes(public)
	authed := router.Group("/api", middleware.Auth())
	handler.RegisterRoutes(authed)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/users/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "hunter22",
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var registered struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("expected a token on register")
	}
	if registered.User.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", registered.User)
	}

	resp = postJSON(t, router, "/api/users/login", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter22",
	}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var loggedIn struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loggedIn); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	// Token works against an authenticated route.
	req := httptest.NewRequest(http.MethodGet, "/api/users/data", nil)
	req.Header.Set("Authorization", "Bearer "+loggedIn.Token)
	dataResp := httptest.NewRecorder()
	router.ServeHTTP(dataResp, req)
	if dataResp.Code != http.StatusOK {
		t.Fatalf("data: expected 200, got %d: %s", dataResp.Code, dataResp.Body.String())
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/users/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "hunter22",
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.Code)
	}

	wrongPassword := postJSON(t, router, "/api/users/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong",
	}, "")
	unknownEmail := postJSON(t, router, "/api/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter22",
	}, "")

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatal("wrong password and unknown email must return identical bodies")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := setupRouter(t)

	payload := map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "hunter22",
	}
	if resp := postJSON(t, router, "/api/users/register", payload, ""); resp.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.Code)
	}
	resp := postJSON(t, router, "/api/users/register", payload, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/users/register", map[string]string{
		"name":     "Jane",
		"email":    "not-an-email",
		"password": "hunter22",
	}, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", resp.Code)
	}

	resp = postJSON(t, router, "/api/users/register", map[string]string{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "tiny",
	}, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", resp.Code)
	}
}

func TestUserDataRequiresAuth(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/data", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
