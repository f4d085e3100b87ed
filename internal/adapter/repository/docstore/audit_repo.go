package docstore

import (
	"context"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// Events recorded by batch jobs that span workspaces carry no workspace id;
// they are filed under a reserved one.
const globalWorkspace = "_global"

// AuditRepository persists audit events for the async sink.
type AuditRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(store *docstore.Store, retrier *Retrier) *AuditRepository {
	return &AuditRepository{store: store, retrier: retrier}
}

// Write persists one audit event.
func (r *AuditRepository) Write(ctx context.Context, event *domain.AuditEvent) error {
	workspaceID := event.WorkspaceID
	if workspaceID == "" {
		workspaceID = globalWorkspace
	}

	data, err := encode(event)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collAuditEvents, event.ID, data)
	})
}
