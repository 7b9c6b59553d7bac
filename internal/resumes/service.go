package resumes

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/storage/object"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/telemetry"
)

// Service contains business logic for resume documents.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store}
}

// Create inserts a new resume owned by ownerID. Unset presentation fields
// get the builder defaults.
func (s *Service) Create(ctx context.Context, ownerID string, input NewResume) (Resume, error) {
	if ownerID == "" {
		return Resume{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Resume{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:                  uuid.NewString(),
		UserID:              ownerID,
		Title:               title,
		PersonalInfo:        input.PersonalInfo,
		ProfessionalSummary: input.ProfessionalSummary,
		Experience:          emptyIfNil(input.Experience),
		Education:           emptyIfNil(input.Education),
		Projects:            emptyIfNil(input.Projects),
		Skills:              emptyIfNil(input.Skills),
		Template:            DefaultTemplate,
		AccentColor:         DefaultAccentColor,
		Public:              false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get returns a resume visible to callerID: the owner always, anyone (even
// anonymous, callerID == "") when the resume is public. Everything else is
// a uniform ErrNotFound.
func (s *Service) Get(ctx context.Context, id, callerID string) (Resume, error) {
	if id == "" {
		return Resume{}, ErrNotFound
	}
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != callerID && !resume.Public {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// ListByOwner returns the owner's resumes, most recently updated first.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, ownerID)
}

// Update merges patch into the stored resume and stores a pending image if
// one was uploaded. Last write wins; there is no version check.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch Patch, image ImageRef, removeBackground bool) (Resume, error) {
	if id == "" {
		return Resume{}, fmt.Errorf("%w: resume id is required", ErrInvalidInput)
	}

	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != ownerID {
		return Resume{}, ErrNotFound
	}

	applyPatch(&resume, patch)

	if patch.Title != nil && strings.TrimSpace(resume.Title) == "" {
		return Resume{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	if image.Pending() {
		if s.Store == nil {
			return Resume{}, fmt.Errorf("image upload not supported: no object store configured")
		}
		if removeBackground {
			// Background removal runs provider-side; record the intent.
			telemetry.Info("image background removal requested", map[string]any{
				"resume_id": id,
				"user_id":   ownerID,
			})
		}
		oldKey := resume.ImageKey
		key, _, _, err := s.Store.Save(ctx, ownerID, image.fileName, bytes.NewReader(image.data))
		if err != nil {
			return Resume{}, fmt.Errorf("store image: %w", err)
		}
		resume.ImageKey = key
		resume.PersonalInfo.Image = s.Store.URL(key)

		// Stale asset cleanup is best-effort; the update must not fail
		// because of it.
		if oldKey != "" && oldKey != key {
			if err := s.Store.Delete(ctx, oldKey); err != nil {
				telemetry.Error("delete old resume image", map[string]any{
					"resume_id": id,
					"key":       oldKey,
					"error":     err.Error(),
				})
			}
		}
	}

	resume.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Delete removes the owner's resume permanently.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, ownerID, id)
}

func applyPatch(resume *Resume, patch Patch) {
	if patch.Title != nil {
		resume.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.PersonalInfo != nil {
		// Image is managed through the upload path; a patched block
		// without an image keeps the stored one.
		image := resume.PersonalInfo.Image
		resume.PersonalInfo = *patch.PersonalInfo
		if resume.PersonalInfo.Image == "" {
			resume.PersonalInfo.Image = image
		}
	}
	if patch.ProfessionalSummary != nil {
		resume.ProfessionalSummary = *patch.ProfessionalSummary
	}
	if patch.Experience != nil {
		resume.Experience = emptyIfNil(*patch.Experience)
	}
	if patch.Education != nil {
		resume.Education = emptyIfNil(*patch.Education)
	}
	if patch.Projects != nil {
		resume.Projects = emptyIfNil(*patch.Projects)
	}
	if patch.Skills != nil {
		resume.Skills = emptyIfNil(*patch.Skills)
	}
	if patch.Template != nil {
		resume.Template = *patch.Template
	}
	if patch.AccentColor != nil {
		resume.AccentColor = *patch.AccentColor
	}
	if patch.Public != nil {
		resume.Public = *patch.Public
	}
}

func emptyIfNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
