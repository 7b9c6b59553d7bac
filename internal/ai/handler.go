package ai

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/middleware"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/respond"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/usage"
)

// maxUploadBytes caps resume document uploads before extraction runs.
const maxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the AI service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/enhance-pro-sum", h.enhanceSummary)
	rg.POST("/ai/enhance-job-desc", h.enhanceJobDescription)
	rg.POST("/ai/upload-resume", h.uploadResume)
	rg.POST("/ai/check-ats", h.checkATS)
}

func (h *Handler) enhanceSummary(c *gin.Context) {
	h.enhanceWith(c, h.Svc.EnhanceSummary)
}

func (h *Handler) enhanceJobDescription(c *gin.Context) {
	h.enhanceWith(c, h.Svc.EnhanceJobDescription)
}

func (h *Handler) enhanceWith(c *gin.Context, enhance func(ctx context.Context, userID, content string) (string, error)) {
	userID := middleware.UserIDFromContext(c)

	var req struct {
		UserContent string `json:"userContent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}

	out, err := enhance(c.Request.Context(), userID, req.UserContent)
	if err != nil {
		h.respondPipelineError(c, err, "AI Enhancement failed")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"aiContent": out})
}

func (h *Handler) uploadResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
			return
		}
		if len(data) > maxUploadBytes {
			respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds 10MB limit", nil)
			return
		}

		resume, err := h.Svc.ImportResumeFile(c.Request.Context(), userID, data,
			fileHeader.Header.Get("Content-Type"), fileHeader.Filename, c.PostForm("title"))
		if err != nil {
			h.respondPipelineError(c, err, "Failed to parse resume")
			return
		}
		respond.JSON(c, http.StatusCreated, gin.H{"message": "Success", "resumeId": resume.ID})
		return
	}

	var req struct {
		ResumeText string `json:"resumeText"`
		Title      string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ResumeText == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No resume text provided", nil)
		return
	}

	resume, err := h.Svc.ImportResume(c.Request.Context(), userID, req.ResumeText, req.Title)
	if err != nil {
		h.respondPipelineError(c, err, "Failed to parse resume")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"message": "Success", "resumeId": resume.ID})
}

func (h *Handler) checkATS(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req struct {
		JobDescription string `json:"jobDescription"`
		CVText         string `json:"cvText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}

	analysis, err := h.Svc.CheckATS(c.Request.Context(), userID, req.JobDescription, req.CVText)
	if err != nil {
		h.respondPipelineError(c, err, "AI Analysis failed")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"analysis": analysis})
}

// respondPipelineError maps pipeline failures to the generic status+message
// pairs the UI expects. Gateway and parse failures share one message; logs
// tell them apart.
func (h *Handler) respondPipelineError(c *gin.Context, err error, genericMessage string) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
	case errors.Is(err, ErrExtraction):
		respond.Error(c, http.StatusBadRequest, "extraction_failed", "Could not read text from the file. Please try a different document.", nil)
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "quota_exceeded", "You've reached your daily AI limit. Try again tomorrow.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", genericMessage, nil)
	}
}
