package availability

import "context"

// Repository defines read access to availability settings. The scheduling
// core only reads settings; administration of them lives elsewhere.
type Repository interface {
	// GetByBranch retrieves the settings for a branch, falling back to the
	// global default row when the branch has none of its own
	GetByBranch(ctx context.Context, branchID string) (Settings, error)
}
