package middleware

import (
	"context"
	"net/http"
)

// Every API request acts inside one workspace on behalf of one actor, both
// supplied by the gateway in front of this service.
const (
	// WorkspaceHeader carries the workspace a request is scoped to.
	WorkspaceHeader = "X-Workspace-ID"
	// ActorHeader carries the uid of the acting user.
	ActorHeader = "X-Actor-UID"
)

type contextKey string

const (
	workspaceKey contextKey = "workspace_id"
	actorKey     contextKey = "actor_uid"
)

// RequireWorkspace rejects requests without a workspace header and puts the
// workspace and actor ids on the request context.
func RequireWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workspaceID := r.Header.Get(WorkspaceHeader)
		if workspaceID == "" {
			http.Error(w, `{"error":"missing workspace header"}`, http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), workspaceKey, workspaceID)
		if actor := r.Header.Get(ActorHeader); actor != "" {
			ctx = context.WithValue(ctx, actorKey, actor)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithWorkspace returns a context carrying the workspace id.
func WithWorkspace(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, workspaceKey, workspaceID)
}

// WithActor returns a context carrying the acting user's uid.
func WithActor(ctx context.Context, actorUID string) context.Context {
	return context.WithValue(ctx, actorKey, actorUID)
}

// WorkspaceID returns the workspace id set by RequireWorkspace.
func WorkspaceID(ctx context.Context) string {
	id, _ := ctx.Value(workspaceKey).(string)
	return id
}

// ActorUID returns the acting user's uid, empty when anonymous.
func ActorUID(ctx context.Context) string {
	uid, _ := ctx.Value(actorKey).(string)
	return uid
}
