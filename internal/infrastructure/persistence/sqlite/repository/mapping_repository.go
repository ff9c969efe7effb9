package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"deskbridge/internal/errs"
	"deskbridge/internal/infrastructure/persistence/sqlite/model"
	"deskbridge/internal/ports"
)

type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

func (r *MappingRepository) Lookup(ctx context.Context, integrationID string, objectType string, externalID string) (string, bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return "", false, err
	}

	var row model.ExternalObjectMapping
	err = db.Where(
		"integration_id = ? AND object_type = ? AND external_id = ?",
		integrationID, objectType, externalID,
	).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Wrap(err, "query external mapping")
	}
	return row.InternalID, true, nil
}

// ReverseLookup resolves the origin identifier of a canonical row, the
// direction outbound push travels.
func (r *MappingRepository) ReverseLookup(ctx context.Context, integrationID string, objectType string, internalID string) (string, bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return "", false, err
	}

	var row model.ExternalObjectMapping
	err = db.Where(
		"integration_id = ? AND object_type = ? AND internal_id = ?",
		integrationID, objectType, internalID,
	).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Wrap(err, "reverse query external mapping")
	}
	return row.ExternalID, true, nil
}

// Upsert refreshes last_seen_at on conflict. The internal ID of an
// established mapping is deliberately not part of the update set: once
// bound, a triple never re-points.
func (r *MappingRepository) Upsert(ctx context.Context, mapping ports.ExternalMapping) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.ExternalObjectMapping{
		IntegrationID: mapping.IntegrationID,
		ObjectType:    mapping.ObjectType,
		ExternalID:    mapping.ExternalID,
		InternalID:    mapping.InternalID,
		LastSeenAt:    mapping.LastSeenAt,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "integration_id"}, {Name: "object_type"}, {Name: "external_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"last_seen_at"}),
	}).Create(&row).Error
	if err != nil {
		return errs.Wrap(err, "upsert external mapping")
	}
	return nil
}

func (r *MappingRepository) CountByType(ctx context.Context, integrationID string, objectType string) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.Model(&model.ExternalObjectMapping{}).
		Where("integration_id = ? AND object_type = ?", integrationID, objectType).
		Count(&count).Error
	if err != nil {
		return 0, errs.Wrap(err, "count external mappings")
	}
	return count, nil
}
