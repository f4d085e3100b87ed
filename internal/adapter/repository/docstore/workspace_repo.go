package docstore

import (
	"context"

	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// WorkspaceRepository implements usecase.WorkspaceRepository by enumerating
// the workspaces present in the document store.
type WorkspaceRepository struct {
	store *docstore.Store
}

// NewWorkspaceRepository creates a new WorkspaceRepository.
func NewWorkspaceRepository(store *docstore.Store) *WorkspaceRepository {
	return &WorkspaceRepository{store: store}
}

// ListIDs returns every known workspace id.
func (r *WorkspaceRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.store.Workspaces(ctx)
}
