package repository

import (
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"deskbridge/internal/infrastructure/persistence/sqlite/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "repo_test.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Workspace{},
		&model.Integration{},
		&model.SyncCursor{},
		&model.ExternalObjectMapping{},
		&model.RawRecord{},
		&model.Group{},
		&model.Organization{},
		&model.Customer{},
		&model.User{},
		&model.Brand{},
		&model.TicketForm{},
		&model.CustomField{},
		&model.View{},
		&model.SLAPolicy{},
		&model.Ticket{},
		&model.Conversation{},
		&model.Tag{},
		&model.TicketTag{},
		&model.Message{},
		&model.Attachment{},
		&model.AuditEvent{},
		&model.CsatRating{},
		&model.TimeEntry{},
		&model.KBArticle{},
		&model.Rule{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}
