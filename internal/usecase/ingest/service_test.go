package ingest

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "deskbridge/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "deskbridge/internal/infrastructure/persistence/sqlite/uow"
	"deskbridge/internal/staging"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ingest_test.sqlite")
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

	svc := NewService(
		sqliterepo.NewSyncStateRepository(db),
		sqliterepo.NewMappingRepository(db),
		sqliterepo.NewRawRecordRepository(db),
		sqliterepo.NewCanonicalRepository(db),
		sqliteuow.NewUnitOfWork(db),
		nil,
	)
	return svc, db
}

func stage(t *testing.T, dir string, entity domainsync.EntityType, lines ...string) {
	t.Helper()
	records := make([]json.RawMessage, 0, len(lines))
	for _, line := range lines {
		records = append(records, json.RawMessage(line))
	}
	if err := staging.WriteBatch(dir, entity, records); err != nil {
		t.Fatalf("stage %s: %v", entity, err)
	}
}

func TestIngestBuildsTicketWithConversationAndMappings(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityCustomers,
		`{"external_id":"cust-1","name":"Dana","email":"dana@acme.test"}`)
	stage(t, dir, domainsync.EntityTickets,
		`{"external_id":"tk-1","subject":"printer on fire","status":"pending","priority":"urgent","requester_external_id":"cust-1","tags":["vip","hardware"],"updated_at":"2026-03-14T09:00:00Z"}`)

	result, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if result.Counts[domainsync.EntityCustomers] != 1 {
		t.Fatalf("customers = %d, want 1", result.Counts[domainsync.EntityCustomers])
	}
	if result.Counts[domainsync.EntityTickets] != 1 {
		t.Fatalf("tickets = %d, want 1", result.Counts[domainsync.EntityTickets])
	}
	if result.Skipped != 0 || result.Orphaned != 0 {
		t.Fatalf("skipped = %d orphaned = %d, want 0/0", result.Skipped, result.Orphaned)
	}

	var ticket model.Ticket
	if err := db.First(&ticket).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Status != domainsync.StatusPending || ticket.Priority != domainsync.PriorityUrgent {
		t.Fatalf("ticket = %s/%s, want pending/urgent", ticket.Status, ticket.Priority)
	}

	var conversations int64
	if err := db.Model(&model.Conversation{}).Where("ticket_id = ?", ticket.TicketID).Count(&conversations).Error; err != nil {
		t.Fatalf("count conversations: %v", err)
	}
	if conversations != 1 {
		t.Fatalf("conversations = %d, want exactly 1 per ticket", conversations)
	}

	var tags int64
	if err := db.Model(&model.TicketTag{}).Where("ticket_id = ?", ticket.TicketID).Count(&tags).Error; err != nil {
		t.Fatalf("count ticket tags: %v", err)
	}
	if tags != 2 {
		t.Fatalf("ticket tags = %d, want 2", tags)
	}

	var mappings int64
	if err := db.Model(&model.ExternalObjectMapping{}).Count(&mappings).Error; err != nil {
		t.Fatalf("count mappings: %v", err)
	}
	// customers, tickets, conversations.
	if mappings != 3 {
		t.Fatalf("mappings = %d, want 3", mappings)
	}

	var raws int64
	if err := db.Model(&model.RawRecord{}).Count(&raws).Error; err != nil {
		t.Fatalf("count raw records: %v", err)
	}
	if raws != 2 {
		t.Fatalf("raw records = %d, want 2", raws)
	}
}

func TestIngestTwiceIsIdempotent(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityCustomers,
		`{"external_id":"cust-1","name":"Dana"}`)
	stage(t, dir, domainsync.EntityTickets,
		`{"external_id":"tk-1","subject":"hello","requester_external_id":"cust-1"}`)

	first, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest(first) error = %v", err)
	}
	second, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest(second) error = %v", err)
	}

	if first.Counts.Total() != second.Counts.Total() {
		t.Fatalf("counts differ: %d vs %d", first.Counts.Total(), second.Counts.Total())
	}

	var tickets, customers, conversations, mappings int64
	db.Model(&model.Ticket{}).Count(&tickets)
	db.Model(&model.Customer{}).Count(&customers)
	db.Model(&model.Conversation{}).Count(&conversations)
	db.Model(&model.ExternalObjectMapping{}).Count(&mappings)
	if tickets != 1 || customers != 1 || conversations != 1 {
		t.Fatalf("rows = %d tickets / %d customers / %d conversations, want 1 each", tickets, customers, conversations)
	}
	if mappings != 3 {
		t.Fatalf("mappings = %d, want 3 (re-ingest must not mint new identities)", mappings)
	}
}

func TestIngestReusesIdentityAcrossCycles(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityCustomers, `{"external_id":"cust-1","name":"Dana"}`)
	stage(t, dir, domainsync.EntityTickets,
		`{"external_id":"tk-1","subject":"first subject","requester_external_id":"cust-1"}`)
	if _, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir}); err != nil {
		t.Fatalf("Ingest(first) error = %v", err)
	}

	var before model.Ticket
	if err := db.First(&before).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}

	// Second cycle re-exports the same ticket with changed fields.
	stage(t, dir, domainsync.EntityTickets,
		`{"external_id":"tk-1","subject":"second subject","status":"solved","requester_external_id":"cust-1"}`)
	if _, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir}); err != nil {
		t.Fatalf("Ingest(second) error = %v", err)
	}

	var after model.Ticket
	if err := db.First(&after).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if after.TicketID != before.TicketID {
		t.Fatalf("ticket id changed across cycles: %q vs %q", before.TicketID, after.TicketID)
	}
	if after.Subject != "second subject" || after.Status != domainsync.StatusSolved {
		t.Fatalf("update did not apply: %+v", after)
	}
}

func TestIngestCountsMalformedRecords(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityGroups,
		`{"external_id":"grp-1","name":"support"}`,
		`{"name":"no external id"}`,
		`"just a string"`)

	result, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if result.Counts[domainsync.EntityGroups] != 1 {
		t.Fatalf("groups = %d, want 1", result.Counts[domainsync.EntityGroups])
	}
	if result.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", result.Skipped)
	}
}

type capturingPublisher struct {
	payloads [][]byte
}

func (c *capturingPublisher) PublishCycleCompleted(_ context.Context, payload []byte) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

func TestIngestPublishesStatsWithSkipCount(t *testing.T) {
	svc, _ := setupService(t)
	publisher := &capturingPublisher{}
	svc.publisher = publisher
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityGroups,
		`{"external_id":"grp-1","name":"support"}`,
		`{"name":"no external id"}`,
		`"just a string"`)

	result, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if len(publisher.payloads) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.payloads))
	}
	var stats domainsync.CycleStats
	if err := json.Unmarshal(publisher.payloads[0], &stats); err != nil {
		t.Fatalf("decode published stats: %v", err)
	}
	if stats.Connector != "zendesk" {
		t.Fatalf("published connector = %q", stats.Connector)
	}
	if stats.SkippedRecords != result.Skipped || stats.SkippedRecords != 2 {
		t.Fatalf("published skippedRecords = %d, want %d", stats.SkippedRecords, result.Skipped)
	}
	if stats.Counts[domainsync.EntityGroups] != 1 {
		t.Fatalf("published counts = %v", stats.Counts)
	}
	if stats.StartedAt.IsZero() || stats.FinishedAt.Before(stats.StartedAt) {
		t.Fatalf("published timestamps invalid: %+v", stats)
	}
}

func TestIngestOrphansRecordsWithUnresolvableParents(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	// Ticket requester never exported; message references a ticket that
	// was orphaned away.
	stage(t, dir, domainsync.EntityTickets,
		`{"external_id":"tk-1","subject":"x","requester_external_id":"ghost"}`)
	stage(t, dir, domainsync.EntityMessages,
		`{"external_id":"msg-1","ticket_external_id":"tk-1","body":"hello"}`)

	result, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if result.Orphaned != 2 {
		t.Fatalf("orphaned = %d, want 2", result.Orphaned)
	}
	if result.Counts.Total() != 0 {
		t.Fatalf("counts = %v, want none", result.Counts)
	}

	var tickets, messages int64
	db.Model(&model.Ticket{}).Count(&tickets)
	db.Model(&model.Message{}).Count(&messages)
	if tickets != 0 || messages != 0 {
		t.Fatalf("rows = %d tickets / %d messages, want 0/0", tickets, messages)
	}
}
