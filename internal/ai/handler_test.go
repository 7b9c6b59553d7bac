package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/resumes"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/auth"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/middleware"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/usage"
)

func setupRouter(t *testing.T, stub *stubLLM, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeSvc := resumes.NewService(resumes.NewMemoryRepo(), nil)
	svc := NewService(stub, resumeSvc, usage.NewService(limit), nil)
	handler := NewHandler(svc)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api", middleware.Auth()))
	return router
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: userID})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func postJSON(t *testing.T, router *gin.Engine, path, authHeader string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestEnhanceEndpoint(t *testing.T) {
	stub := &stubLLM{response: "Improved summary."}
	router := setupRouter(t, stub, 100)

	resp := postJSON(t, router, "/api/ai/enhance-pro-sum", bearer(t, "user-1"),
		map[string]string{"userContent": "old summary"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		AIContent string `json:"aiContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.AIContent != "Improved summary." {
		t.Fatalf("unexpected content %q", out.AIContent)
	}
}

func TestEnhanceEndpointRequiresAuth(t *testing.T) {
	router := setupRouter(t, &stubLLM{response: "x"}, 100)

	resp := postJSON(t, router, "/api/ai/enhance-pro-sum", "",
		map[string]string{"userContent": "old summary"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestEnhanceEndpointRejectsExpiredToken(t *testing.T) {
	router := setupRouter(t, &stubLLM{response: "x"}, 100)

	expired := time.Now().UTC().Add(-time.Hour).Unix()
	token, err := auth.SignJWT(auth.Claims{Sub: "user-1", Exp: expired})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	resp := postJSON(t, router, "/api/ai/enhance-job-desc", "Bearer "+token,
		map[string]string{"userContent": "content"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.Code)
	}
}

func TestEnhanceEndpointEmptyContentIs400(t *testing.T) {
	router := setupRouter(t, &stubLLM{response: "x"}, 100)

	resp := postJSON(t, router, "/api/ai/enhance-pro-sum", bearer(t, "user-1"),
		map[string]string{"userContent": "  "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Error.Message != "Missing required fields" {
		t.Fatalf("unexpected message %q", out.Error.Message)
	}
}

func TestUploadResumeTextPath(t *testing.T) {
	stub := &stubLLM{response: extractionResponse}
	router := setupRouter(t, stub, 100)

	resp := postJSON(t, router, "/api/ai/upload-resume", bearer(t, "user-1"),
		map[string]string{"resumeText": "a long enough resume text", "title": "From Upload"})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Message  string `json:"message"`
		ResumeID string `json:"resumeId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Message != "Success" || out.ResumeID == "" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestUploadResumeEmptyTextIs400(t *testing.T) {
	router := setupRouter(t, &stubLLM{response: extractionResponse}, 100)

	resp := postJSON(t, router, "/api/ai/upload-resume", bearer(t, "user-1"),
		map[string]string{"resumeText": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Error.Message != "No resume text provided" {
		t.Fatalf("unexpected message %q", out.Error.Message)
	}
}

func TestUploadResumeGatewayFailureIsGeneric500(t *testing.T) {
	stub := &stubLLM{err: errors.New("upstream timeout: api.groq.com")}
	router := setupRouter(t, stub, 100)

	resp := postJSON(t, router, "/api/ai/upload-resume", bearer(t, "user-1"),
		map[string]string{"resumeText": "a long enough resume text"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !bytes.Contains([]byte(body), []byte("Failed to parse resume")) {
		t.Fatalf("expected generic message, got %s", body)
	}
	if bytes.Contains([]byte(body), []byte("groq")) {
		t.Fatalf("provider detail leaked into response: %s", body)
	}
}

func TestUploadResumeParseFailureSharesGenericMessage(t *testing.T) {
	stub := &stubLLM{response: "not json at all"}
	router := setupRouter(t, stub, 100)

	resp := postJSON(t, router, "/api/ai/upload-resume", bearer(t, "user-1"),
		map[string]string{"resumeText": "a long enough resume text"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("Failed to parse resume")) {
		t.Fatalf("parse failures must use the same generic message: %s", resp.Body.String())
	}
}

func TestCheckATSEndpoint(t *testing.T) {
	stub := &stubLLM{response: analysisResponse}
	router := setupRouter(t, stub, 100)

	resp := postJSON(t, router, "/api/ai/check-ats", bearer(t, "user-1"),
		map[string]string{"jobDescription": "Go developer", "cvText": "Go engineer resume"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Analysis Analysis `json:"analysis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Analysis.Score != 72 || len(out.Analysis.MissingKeywords) != 1 {
		t.Fatalf("unexpected analysis: %+v", out.Analysis)
	}
}

func TestCheckATSMissingFieldIs400(t *testing.T) {
	router := setupRouter(t, &stubLLM{response: analysisResponse}, 100)

	resp := postJSON(t, router, "/api/ai/check-ats", bearer(t, "user-1"),
		map[string]string{"jobDescription": "Go developer"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestQuotaExceededIs429(t *testing.T) {
	stub := &stubLLM{response: "fine"}
	router := setupRouter(t, stub, 1)

	first := postJSON(t, router, "/api/ai/enhance-pro-sum", bearer(t, "user-1"),
		map[string]string{"userContent": "text"})
	if first.Code != http.StatusOK {
		t.Fatalf("first call within quota: %d", first.Code)
	}

	second := postJSON(t, router, "/api/ai/enhance-pro-sum", bearer(t, "user-1"),
		map[string]string{"userContent": "text"})
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", second.Code, second.Body.String())
	}
	if !bytes.Contains(second.Body.Bytes(), []byte("quota_exceeded")) {
		t.Fatalf("expected quota_exceeded code: %s", second.Body.String())
	}
}
