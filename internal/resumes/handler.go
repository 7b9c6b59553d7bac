package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/middleware"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/respond"
)

// maxImageBytes caps profile image uploads.
const maxImageBytes = 5 << 20

// Handler wires HTTP handlers to the resumes service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches owner-only resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/create", h.create)
	rg.PUT("/resumes/update", h.update)
	rg.DELETE("/resumes/delete/:id", h.delete)
}

// RegisterPublicRoutes attaches routes that allow anonymous access when the
// resume is public. Must sit behind OptionalAuth.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/get/:id", h.get)
}

// RegisterUserRoutes attaches the owner's resume listing under the users API.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/resumes", h.listMine)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), userID, NewResume{Title: req.Title})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"resume": resume})
}

func (h *Handler) get(c *gin.Context) {
	callerID := middleware.UserIDFromContext(c)
	id := c.Param("id")

	resume, err := h.Svc.Get(c.Request.Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"resume": resume})
}

func (h *Handler) listMine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"resumes": list})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resumeID, patch, image, removeBackground, err := parseUpdateRequest(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), userID, resumeID, patch, image, removeBackground)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume data", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"resume": resume, "message": "Changes saved!"})
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"message": "Resume deleted"})
}

// parseUpdateRequest accepts the builder's multipart payload (resumeId,
// resumeData JSON, optional image file) and a plain JSON fallback.
func parseUpdateRequest(c *gin.Context) (string, Patch, ImageRef, bool, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		return parseMultipartUpdate(c)
	}

	var req struct {
		ResumeID   string `json:"resumeId"`
		ResumeData Patch  `json:"resumeData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", Patch{}, NoImage(), false, errors.New("invalid request body")
	}
	if req.ResumeID == "" {
		return "", Patch{}, NoImage(), false, errors.New("resumeId is required")
	}
	return req.ResumeID, req.ResumeData, NoImage(), false, nil
}

func parseMultipartUpdate(c *gin.Context) (string, Patch, ImageRef, bool, error) {
	resumeID := c.PostForm("resumeId")
	if resumeID == "" {
		return "", Patch{}, NoImage(), false, errors.New("resumeId is required")
	}

	var patch Patch
	if raw := c.PostForm("resumeData"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			return "", Patch{}, NoImage(), false, errors.New("resumeData is not valid JSON")
		}
	}

	removeBackground := strings.EqualFold(c.PostForm("removeBackground"), "yes")

	image := NoImage()
	if fileHeader, err := c.FormFile("image"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return "", Patch{}, NoImage(), false, errors.New("could not read image upload")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		if err != nil {
			return "", Patch{}, NoImage(), false, errors.New("could not read image upload")
		}
		if len(data) > maxImageBytes {
			return "", Patch{}, NoImage(), false, errors.New("image exceeds 5MB limit")
		}
		image = PendingImage(fileHeader.Filename, data)
	}

	return resumeID, patch, image, removeBackground, nil
}
