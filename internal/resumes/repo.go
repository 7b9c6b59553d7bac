package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	// GetByID fetches a resume regardless of owner; visibility is the
	// service's concern.
	GetByID(ctx context.Context, id string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	// Update persists the full document, scoped to the owner. Returns
	// ErrNotFound when no row matches id+owner.
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, userID, id string) error
}
