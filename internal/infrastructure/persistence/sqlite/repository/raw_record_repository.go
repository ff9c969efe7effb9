package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"deskbridge/internal/errs"
	"deskbridge/internal/infrastructure/persistence/sqlite/model"
	"deskbridge/internal/ports"
)

type RawRecordRepository struct {
	db *gorm.DB
}

func NewRawRecordRepository(db *gorm.DB) *RawRecordRepository {
	return &RawRecordRepository{db: db}
}

// Put overwrites the stored payload unconditionally so replay always
// reflects the latest export, whether or not anything changed.
func (r *RawRecordRepository) Put(ctx context.Context, record ports.RawRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.RawRecord{
		IntegrationID: record.IntegrationID,
		ObjectType:    record.ObjectType,
		ExternalID:    record.ExternalID,
		Payload:       record.Payload,
		ReceivedAt:    record.ReceivedAt,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "integration_id"}, {Name: "object_type"}, {Name: "external_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "received_at"}),
	}).Create(&row).Error
	if err != nil {
		return errs.Wrap(err, "put raw record")
	}
	return nil
}
