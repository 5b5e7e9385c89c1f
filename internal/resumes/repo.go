package resumes

import "context"

// Repo defines persistence operations for resumes. Update replaces every
// child collection wholesale; both Get and Update report a resume that is
// missing or owned by someone else as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, res Resume) error
	Get(ctx context.Context, userID, id string) (Resume, error)
	// GetPublic fetches a resume by id with no ownership check; it backs
	// the shared read-only preview surface.
	GetPublic(ctx context.Context, id string) (Resume, error)
	List(ctx context.Context, userID string) ([]Resume, error)
	Update(ctx context.Context, res Resume) error
	Delete(ctx context.Context, userID, id string) error
}
