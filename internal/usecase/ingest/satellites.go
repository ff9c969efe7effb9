package ingest

import (
	"context"
	"encoding/json"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

// Ticket satellites: audit events, CSAT ratings, time entries. All three
// require a resolvable ticket and orphan otherwise.

func (s *Service) ingestAuditEvents(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.AuditEventRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityAuditEvents, rec.ExternalID, raw); err != nil {
			return err
		}

		ticketID, found, err := p.resolve(ctx, domainsync.EntityTickets, rec.TicketExternalID)
		if err != nil {
			return err
		}
		if !found {
			result.Orphaned++
			continue
		}
		actorID, err := p.resolveOptional(ctx, domainsync.EntityUsers, rec.ActorExternalID)
		if err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityAuditEvents, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveAuditEvent(ctx, ports.AuditEvent{
			AuditEventID: id,
			TicketID:     ticketID,
			ActorID:      actorID,
			Action:       rec.Action,
			Detail:       rec.Detail,
			OccurredAt:   p.orNow(rec.OccurredAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityAuditEvents, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityAuditEvents, 1)
	}
	return nil
}

func (s *Service) ingestCsatRatings(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.CsatRatingRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityCsatRatings, rec.ExternalID, raw); err != nil {
			return err
		}

		ticketID, found, err := p.resolve(ctx, domainsync.EntityTickets, rec.TicketExternalID)
		if err != nil {
			return err
		}
		if !found {
			result.Orphaned++
			continue
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityCsatRatings, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveCsatRating(ctx, ports.CsatRating{
			CsatRatingID: id,
			TicketID:     ticketID,
			Score:        rec.Score,
			Comment:      rec.Comment,
			RatedAt:      p.orNow(rec.RatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityCsatRatings, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityCsatRatings, 1)
	}
	return nil
}

func (s *Service) ingestTimeEntries(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.TimeEntryRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityTimeEntries, rec.ExternalID, raw); err != nil {
			return err
		}

		ticketID, found, err := p.resolve(ctx, domainsync.EntityTickets, rec.TicketExternalID)
		if err != nil {
			return err
		}
		if !found {
			result.Orphaned++
			continue
		}
		agentID, err := p.resolveOptional(ctx, domainsync.EntityUsers, rec.AgentExternalID)
		if err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityTimeEntries, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveTimeEntry(ctx, ports.TimeEntry{
			TimeEntryID: id,
			TicketID:    ticketID,
			AgentID:     agentID,
			Minutes:     rec.Minutes,
			Note:        rec.Note,
			LoggedAt:    p.orNow(rec.LoggedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityTimeEntries, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityTimeEntries, 1)
	}
	return nil
}
