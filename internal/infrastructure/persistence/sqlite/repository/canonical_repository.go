package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/infrastructure/persistence/sqlite/model"
	"deskbridge/internal/ports"
)

type CanonicalRepository struct {
	db *gorm.DB
}

func NewCanonicalRepository(db *gorm.DB) *CanonicalRepository {
	return &CanonicalRepository{db: db}
}

// save upserts by primary key. created_at is excluded from the update set
// so re-ingestion mutates rows in place without rewriting their origin
// timestamps.
func save[T any](ctx context.Context, base *gorm.DB, pk string, updateCols []string, row *T, what string) error {
	db, err := dbFromContext(ctx, base)
	if err != nil {
		return err
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: pk}},
		DoUpdates: clause.AssignmentColumns(updateCols),
	}).Create(row).Error
	return errs.Wrapf(err, "save %s", what)
}

func (r *CanonicalRepository) SaveGroup(ctx context.Context, row ports.Group) error {
	rec := model.Group{
		GroupID:     row.GroupID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "group_id", []string{"name", "updated_at"}, &rec, "group")
}

func (r *CanonicalRepository) SaveOrganization(ctx context.Context, row ports.Organization) error {
	rec := model.Organization{
		OrganizationID: row.OrganizationID,
		WorkspaceID:    row.WorkspaceID,
		Name:           row.Name,
		Domain:         row.Domain,
		Notes:          row.Notes,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	return save(ctx, r.db, "organization_id", []string{"name", "domain", "notes", "updated_at"}, &rec, "organization")
}

func (r *CanonicalRepository) SaveCustomer(ctx context.Context, row ports.Customer) error {
	rec := model.Customer{
		CustomerID:     row.CustomerID,
		WorkspaceID:    row.WorkspaceID,
		OrganizationID: row.OrganizationID,
		Name:           row.Name,
		Email:          row.Email,
		Phone:          row.Phone,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	return save(ctx, r.db, "customer_id", []string{"organization_id", "name", "email", "phone", "updated_at"}, &rec, "customer")
}

func (r *CanonicalRepository) SaveUser(ctx context.Context, row ports.User) error {
	rec := model.User{
		UserID:      row.UserID,
		WorkspaceID: row.WorkspaceID,
		GroupID:     row.GroupID,
		Name:        row.Name,
		Email:       row.Email,
		Role:        row.Role,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "user_id", []string{"group_id", "name", "email", "role", "updated_at"}, &rec, "user")
}

func (r *CanonicalRepository) SaveBrand(ctx context.Context, row ports.Brand) error {
	rec := model.Brand{
		BrandID:     row.BrandID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Subdomain:   row.Subdomain,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "brand_id", []string{"name", "subdomain", "updated_at"}, &rec, "brand")
}

func (r *CanonicalRepository) SaveTicketForm(ctx context.Context, row ports.TicketForm) error {
	rec := model.TicketForm{
		TicketFormID: row.TicketFormID,
		WorkspaceID:  row.WorkspaceID,
		Name:         row.Name,
		Position:     row.Position,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	return save(ctx, r.db, "ticket_form_id", []string{"name", "position", "updated_at"}, &rec, "ticket form")
}

func (r *CanonicalRepository) SaveCustomField(ctx context.Context, row ports.CustomField) error {
	rec := model.CustomField{
		CustomFieldID: row.CustomFieldID,
		WorkspaceID:   row.WorkspaceID,
		Name:          row.Name,
		FieldType:     row.FieldType,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	return save(ctx, r.db, "custom_field_id", []string{"name", "field_type", "updated_at"}, &rec, "custom field")
}

func (r *CanonicalRepository) SaveView(ctx context.Context, row ports.View) error {
	rec := model.View{
		ViewID:      row.ViewID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Definition:  row.Definition,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "view_id", []string{"name", "definition", "updated_at"}, &rec, "view")
}

func (r *CanonicalRepository) SaveSLAPolicy(ctx context.Context, row ports.SLAPolicy) error {
	rec := model.SLAPolicy{
		SLAPolicyID: row.SLAPolicyID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Definition:  row.Definition,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "sla_policy_id", []string{"name", "definition", "updated_at"}, &rec, "sla policy")
}

func (r *CanonicalRepository) SaveTicket(ctx context.Context, row ports.Ticket) error {
	rec := model.Ticket{
		TicketID:       row.TicketID,
		WorkspaceID:    row.WorkspaceID,
		Subject:        row.Subject,
		Description:    row.Description,
		Status:         row.Status,
		Priority:       row.Priority,
		RequesterID:    row.RequesterID,
		AssigneeID:     row.AssigneeID,
		GroupID:        row.GroupID,
		BrandID:        row.BrandID,
		TicketFormID:   row.TicketFormID,
		OrganizationID: row.OrganizationID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	return save(ctx, r.db, "ticket_id", []string{
		"subject", "description", "status", "priority", "requester_id",
		"assignee_id", "group_id", "brand_id", "ticket_form_id",
		"organization_id", "updated_at",
	}, &rec, "ticket")
}

func (r *CanonicalRepository) SaveConversation(ctx context.Context, row ports.Conversation) error {
	rec := model.Conversation{
		ConversationID: row.ConversationID,
		TicketID:       row.TicketID,
		CreatedAt:      row.CreatedAt,
	}
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}
	// 1:1 with ticket; a replayed pass hits the unique ticket_id index,
	// which is the no-op we want.
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
	return errs.Wrap(err, "save conversation")
}

func (r *CanonicalRepository) SaveMessage(ctx context.Context, row ports.Message) error {
	rec := model.Message{
		MessageID:      row.MessageID,
		ConversationID: row.ConversationID,
		AuthorKind:     row.AuthorKind,
		AuthorID:       row.AuthorID,
		Visibility:     row.Visibility,
		Body:           row.Body,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	return save(ctx, r.db, "message_id", []string{
		"conversation_id", "author_kind", "author_id", "visibility", "body", "updated_at",
	}, &rec, "message")
}

func (r *CanonicalRepository) SaveAttachment(ctx context.Context, row ports.Attachment) error {
	rec := model.Attachment{
		AttachmentID: row.AttachmentID,
		MessageID:    row.MessageID,
		FileName:     row.FileName,
		ContentType:  row.ContentType,
		SizeBytes:    row.SizeBytes,
		URL:          row.URL,
		CreatedAt:    row.CreatedAt,
	}
	return save(ctx, r.db, "attachment_id", []string{
		"message_id", "file_name", "content_type", "size_bytes", "url",
	}, &rec, "attachment")
}

func (r *CanonicalRepository) SaveAuditEvent(ctx context.Context, row ports.AuditEvent) error {
	rec := model.AuditEvent{
		AuditEventID: row.AuditEventID,
		TicketID:     row.TicketID,
		ActorID:      row.ActorID,
		Action:       row.Action,
		Detail:       row.Detail,
		OccurredAt:   row.OccurredAt,
	}
	return save(ctx, r.db, "audit_event_id", []string{
		"ticket_id", "actor_id", "action", "detail", "occurred_at",
	}, &rec, "audit event")
}

func (r *CanonicalRepository) SaveCsatRating(ctx context.Context, row ports.CsatRating) error {
	rec := model.CsatRating{
		CsatRatingID: row.CsatRatingID,
		TicketID:     row.TicketID,
		Score:        row.Score,
		Comment:      row.Comment,
		RatedAt:      row.RatedAt,
	}
	return save(ctx, r.db, "csat_rating_id", []string{
		"ticket_id", "score", "comment", "rated_at",
	}, &rec, "csat rating")
}

func (r *CanonicalRepository) SaveTimeEntry(ctx context.Context, row ports.TimeEntry) error {
	rec := model.TimeEntry{
		TimeEntryID: row.TimeEntryID,
		TicketID:    row.TicketID,
		AgentID:     row.AgentID,
		Minutes:     row.Minutes,
		Note:        row.Note,
		LoggedAt:    row.LoggedAt,
	}
	return save(ctx, r.db, "time_entry_id", []string{
		"ticket_id", "agent_id", "minutes", "note", "logged_at",
	}, &rec, "time entry")
}

func (r *CanonicalRepository) SaveKBArticle(ctx context.Context, row ports.KBArticle) error {
	rec := model.KBArticle{
		KBArticleID: row.KBArticleID,
		WorkspaceID: row.WorkspaceID,
		Title:       row.Title,
		Body:        row.Body,
		State:       row.State,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "kb_article_id", []string{"title", "body", "state", "updated_at"}, &rec, "kb article")
}

func (r *CanonicalRepository) SaveRule(ctx context.Context, row ports.Rule) error {
	rec := model.Rule{
		RuleID:      row.RuleID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Definition:  row.Definition,
		Active:      row.Active,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	return save(ctx, r.db, "rule_id", []string{"name", "definition", "active", "updated_at"}, &rec, "rule")
}

func (r *CanonicalRepository) EnsureTag(ctx context.Context, workspaceID string, name string, createdAt string) (string, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return "", err
	}

	var row model.Tag
	err = db.Where("workspace_id = ? AND name = ?", workspaceID, name).First(&row).Error
	if err == nil {
		return row.TagID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errs.Wrap(err, "query tag")
	}

	row = model.Tag{
		TagID:       uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		CreatedAt:   createdAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return "", errs.Wrap(err, "create tag")
	}
	return row.TagID, nil
}

func (r *CanonicalRepository) TagTicket(ctx context.Context, ticketID string, tagID string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.TicketTag{TicketID: ticketID, TagID: tagID}
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	return errs.Wrap(err, "tag ticket")
}

func (r *CanonicalRepository) GetTicket(ctx context.Context, ticketID string) (ports.Ticket, bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Ticket{}, false, err
	}

	var row model.Ticket
	err = db.Where("ticket_id = ?", ticketID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Ticket{}, false, nil
	}
	if err != nil {
		return ports.Ticket{}, false, errs.Wrap(err, "query ticket")
	}
	return mapTicket(row), true, nil
}

// TicketsUpdatedSince filters and orders on parsed timestamps in Go:
// updated_at is a variable-precision RFC3339 text column, so lexical SQL
// comparison would misorder sub-second values ("...00.5Z" sorts before
// "...00Z"). The outbound cursor relies on chronological processing order.
func (r *CanonicalRepository) TicketsUpdatedSince(ctx context.Context, workspaceID string, since string) ([]ports.Ticket, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Ticket
	if err := db.Where("workspace_id = ?", workspaceID).
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query tickets")
	}

	var bound time.Time
	hasBound := false
	if since != "" {
		bound, hasBound = domainsync.ParseTime(since)
	}

	items := make([]ports.Ticket, 0, len(rows))
	for _, row := range rows {
		if hasBound {
			updated, ok := domainsync.ParseTime(row.UpdatedAt)
			if !ok || !updated.After(bound) {
				continue
			}
		}
		items = append(items, mapTicket(row))
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := domainsync.ParseTime(items[i].UpdatedAt)
		tj, _ := domainsync.ParseTime(items[j].UpdatedAt)
		if ti.Equal(tj) {
			return items[i].TicketID < items[j].TicketID
		}
		return ti.Before(tj)
	})
	return items, nil
}

func (r *CanonicalRepository) CountTickets(ctx context.Context, workspaceID string) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.Model(&model.Ticket{}).Where("workspace_id = ?", workspaceID).Count(&count).Error
	if err != nil {
		return 0, errs.Wrap(err, "count tickets")
	}
	return count, nil
}

func mapTicket(row model.Ticket) ports.Ticket {
	return ports.Ticket{
		TicketID:       row.TicketID,
		WorkspaceID:    row.WorkspaceID,
		Subject:        row.Subject,
		Description:    row.Description,
		Status:         row.Status,
		Priority:       row.Priority,
		RequesterID:    row.RequesterID,
		AssigneeID:     row.AssigneeID,
		GroupID:        row.GroupID,
		BrandID:        row.BrandID,
		TicketFormID:   row.TicketFormID,
		OrganizationID: row.OrganizationID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
