package ingest

import (
	"context"
	"testing"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/infrastructure/persistence/sqlite/model"
)

func TestStaffCustomerMaterializesUser(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityGroups, `{"external_id":"grp-1","name":"support"}`)
	stage(t, dir, domainsync.EntityCustomers,
		`{"external_id":"agent-1","name":"Sam","staff":true,"group_external_id":"grp-1"}`,
		`{"external_id":"cust-1","name":"Dana"}`)

	result, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if result.Counts[domainsync.EntityCustomers] != 2 {
		t.Fatalf("customers = %d, want 2 (staff also keep a customer row)", result.Counts[domainsync.EntityCustomers])
	}
	if result.Counts[domainsync.EntityUsers] != 1 {
		t.Fatalf("users = %d, want 1", result.Counts[domainsync.EntityUsers])
	}

	var user model.User
	if err := db.First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Role != "agent" {
		t.Fatalf("role = %q, want agent default", user.Role)
	}
	if user.GroupID == nil {
		t.Fatalf("group reference should resolve")
	}
}

func TestStaffUserResolvesAsTicketAssignee(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	dir := t.TempDir()

	stage(t, dir, domainsync.EntityCustomers,
		`{"external_id":"agent-1","name":"Sam","staff":true,"role":"admin"}`,
		`{"external_id":"cust-1","name":"Dana"}`)
	stage(t, dir, domainsync.EntityTickets,
		`{"external_id":"tk-1","subject":"x","requester_external_id":"cust-1","assignee_external_id":"agent-1"}`)

	if _, err := svc.Ingest(ctx, Input{Connector: "zendesk", Workspace: "acme", Dir: dir}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	var ticket model.Ticket
	if err := db.First(&ticket).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.AssigneeID == nil {
		t.Fatalf("assignee should resolve through the users mapping")
	}

	var user model.User
	if err := db.First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if *ticket.AssigneeID != user.UserID {
		t.Fatalf("assignee = %q, want %q", *ticket.AssigneeID, user.UserID)
	}
	if user.Role != "admin" {
		t.Fatalf("role = %q, want admin (explicit role wins over default)", user.Role)
	}
}
