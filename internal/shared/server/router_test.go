package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/ai"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/llm"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/resumes"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/config"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/usage"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/users"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeSvc := resumes.NewService(resumes.NewMemoryRepo(), nil)
	userSvc := users.NewService(users.NewMemoryRepo())
	aiSvc := ai.NewService(llm.PlaceholderClient{}, resumeSvc, usage.NewService(50), nil)

	return NewRouter(RouterDeps{
		Config:        config.Config{CORSAllowOrigin: []string{"http://localhost:5173"}},
		AIHandler:     ai.NewHandler(aiSvc),
		ResumeHandler: resumes.NewHandler(resumeSvc),
		UserHandler:   users.NewHandler(userSvc),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "resume_imports_total") {
		t.Fatalf("expected counters in metrics output: %s", resp.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/data"},
		{http.MethodGet, "/api/users/resumes"},
		{http.MethodPost, "/api/resumes/create"},
		{http.MethodPost, "/api/ai/check-ats"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, resp.Code)
		}
	}
}

func TestRegisterIsPublic(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"email":"jane@example.com","name":"Jane","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCORSHeadersApplied(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/users/register", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allow-origin header, got %q", got)
	}
}
