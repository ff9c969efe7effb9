package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/infrastructure/persistence/sqlite/model"
	"deskbridge/internal/ports"
)

type SyncStateRepository struct {
	db *gorm.DB
}

func NewSyncStateRepository(db *gorm.DB) *SyncStateRepository {
	return &SyncStateRepository{db: db}
}

func (r *SyncStateRepository) GetOrCreateWorkspace(ctx context.Context, name string) (ports.Workspace, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Workspace{}, err
	}

	var row model.Workspace
	err = db.Where("name = ?", name).First(&row).Error
	if err == nil {
		return mapWorkspace(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Workspace{}, errs.Wrap(err, "query workspace")
	}

	row = model.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        name,
		CreatedAt:   domainsync.FormatTime(time.Now()),
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Workspace{}, errs.Wrap(err, "create workspace")
	}
	return mapWorkspace(row), nil
}

func (r *SyncStateRepository) GetOrCreateIntegration(ctx context.Context, workspaceID string, provider string) (ports.Integration, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Integration{}, err
	}

	var row model.Integration
	err = db.Where("workspace_id = ? AND provider = ?", workspaceID, provider).First(&row).Error
	if err == nil {
		return mapIntegration(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Integration{}, errs.Wrap(err, "query integration")
	}

	now := domainsync.FormatTime(time.Now())
	row = model.Integration{
		IntegrationID: uuid.NewString(),
		WorkspaceID:   workspaceID,
		Provider:      provider,
		Status:        model.IntegrationStatusPlanned,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Integration{}, errs.Wrap(err, "create integration")
	}
	return mapIntegration(row), nil
}

func (r *SyncStateRepository) SetIntegrationStatus(ctx context.Context, integrationID string, status string, updatedAt string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	res := db.Model(&model.Integration{}).
		Where("integration_id = ?", integrationID).
		Updates(map[string]any{"status": status, "updated_at": updatedAt})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update integration status")
	}
	return nil
}

func (r *SyncStateRepository) GetCursor(ctx context.Context, integrationID string, objectType string, direction string) (ports.SyncCursor, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.SyncCursor{}, err
	}

	var row model.SyncCursor
	err = db.Where(
		"integration_id = ? AND object_type = ? AND direction = ?",
		integrationID, objectType, direction,
	).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.SyncCursor{}, ports.ErrCursorNotFound
	}
	if err != nil {
		return ports.SyncCursor{}, errs.Wrap(err, "query sync cursor")
	}

	return ports.SyncCursor{
		IntegrationID: row.IntegrationID,
		ObjectType:    row.ObjectType,
		Direction:     row.Direction,
		Token:         row.Token,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func (r *SyncStateRepository) PutCursor(ctx context.Context, cursor ports.SyncCursor) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.SyncCursor{
		IntegrationID: cursor.IntegrationID,
		ObjectType:    cursor.ObjectType,
		Direction:     cursor.Direction,
		Token:         cursor.Token,
		UpdatedAt:     cursor.UpdatedAt,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "integration_id"}, {Name: "object_type"}, {Name: "direction"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return errs.Wrap(err, "put sync cursor")
	}
	return nil
}

func mapWorkspace(row model.Workspace) ports.Workspace {
	return ports.Workspace{
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		CreatedAt:   row.CreatedAt,
	}
}

func mapIntegration(row model.Integration) ports.Integration {
	return ports.Integration{
		IntegrationID: row.IntegrationID,
		WorkspaceID:   row.WorkspaceID,
		Provider:      row.Provider,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
