package ingest

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

// ingestTickets handles the tickets batch, the conversation created 1:1
// with each ticket, and the ticket's tag list. A ticket whose requester
// never resolved is orphaned and skipped; optional references that miss
// simply stay null.
func (s *Service) ingestTickets(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.TicketRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityTickets, rec.ExternalID, raw); err != nil {
			return err
		}

		requesterID, found, err := p.resolve(ctx, domainsync.EntityCustomers, rec.RequesterExternalID)
		if err != nil {
			return err
		}
		if !found {
			result.Orphaned++
			continue
		}

		assigneeID, err := p.resolveOptional(ctx, domainsync.EntityUsers, rec.AssigneeExternalID)
		if err != nil {
			return err
		}
		groupID, err := p.resolveOptional(ctx, domainsync.EntityGroups, rec.GroupExternalID)
		if err != nil {
			return err
		}
		brandID, err := p.resolveOptional(ctx, domainsync.EntityBrands, rec.BrandExternalID)
		if err != nil {
			return err
		}
		formID, err := p.resolveOptional(ctx, domainsync.EntityTicketForms, rec.FormExternalID)
		if err != nil {
			return err
		}
		orgID, err := p.resolveOptional(ctx, domainsync.EntityOrganizations, rec.OrganizationExternalID)
		if err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityTickets, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveTicket(ctx, ports.Ticket{
			TicketID:       id,
			WorkspaceID:    p.workspace.WorkspaceID,
			Subject:        rec.Subject,
			Description:    rec.Description,
			Status:         p.vocab.NormalizeStatus(rec.Status),
			Priority:       p.vocab.NormalizePriority(rec.Priority),
			RequesterID:    requesterID,
			AssigneeID:     assigneeID,
			GroupID:        groupID,
			BrandID:        brandID,
			TicketFormID:   formID,
			OrganizationID: orgID,
			CreatedAt:      p.orNow(rec.CreatedAt),
			UpdatedAt:      p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityTickets, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityTickets, 1)

		if err := s.ensureConversation(ctx, p, rec.ExternalID, id); err != nil {
			return err
		}
		if err := s.ingestTicketTags(ctx, p, id, rec.Tags); err != nil {
			return err
		}
	}
	return nil
}

// ensureConversation creates the ticket's 1:1 conversation on first
// sighting. The conversation mapping is keyed by the ticket's external ID
// so message ingestion can resolve it the same way.
func (s *Service) ensureConversation(ctx context.Context, p *pass, ticketExternalID string, ticketID string) error {
	conversationID, found, err := p.resolve(ctx, domainsync.EntityConversations, ticketExternalID)
	if err != nil {
		return err
	}
	if !found {
		conversationID = uuid.NewString()
		err = s.canon.SaveConversation(ctx, ports.Conversation{
			ConversationID: conversationID,
			TicketID:       ticketID,
			CreatedAt:      p.now,
		})
		if err != nil {
			return err
		}
	}
	return p.bind(ctx, domainsync.EntityConversations, ticketExternalID, conversationID)
}

// ingestTicketTags applies the idempotent upsert pattern at list
// granularity: create-if-absent against the workspace tag registry, then
// a join row where duplicates are no-ops.
func (s *Service) ingestTicketTags(ctx context.Context, p *pass, ticketID string, tags []string) error {
	for _, name := range tags {
		if name == "" {
			continue
		}
		tagID, err := s.canon.EnsureTag(ctx, p.workspace.WorkspaceID, name, p.now)
		if err != nil {
			return err
		}
		if err := s.canon.TagTicket(ctx, ticketID, tagID); err != nil {
			return err
		}
	}
	return nil
}
