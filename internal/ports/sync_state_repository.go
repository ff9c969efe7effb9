package ports

import (
	"context"
	"errors"
)

var ErrCursorNotFound = errors.New("sync cursor not found")

type Workspace struct {
	WorkspaceID string
	Name        string
	CreatedAt   string
}

type Integration struct {
	IntegrationID string
	WorkspaceID   string
	Provider      string
	Status        string
	CreatedAt     string
	UpdatedAt     string
}

type SyncCursor struct {
	IntegrationID string
	ObjectType    string
	Direction     string
	Token         string
	UpdatedAt     string
}

// SyncStateRepository owns the sync bookkeeping rows: workspaces,
// integrations and per-direction cursors.
type SyncStateRepository interface {
	GetOrCreateWorkspace(ctx context.Context, name string) (Workspace, error)
	GetOrCreateIntegration(ctx context.Context, workspaceID string, provider string) (Integration, error)
	SetIntegrationStatus(ctx context.Context, integrationID string, status string, updatedAt string) error
	GetCursor(ctx context.Context, integrationID string, objectType string, direction string) (SyncCursor, error)
	PutCursor(ctx context.Context, cursor SyncCursor) error
}
