package ingest

import (
	"context"
	"encoding/json"
	"strings"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

// ingestMessages resolves each message's conversation via its ticket's
// external ID; a message whose ticket was never ingested is orphaned and
// skipped without aborting the batch. Nested attachments ride along.
func (s *Service) ingestMessages(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.MessageRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityMessages, rec.ExternalID, raw); err != nil {
			return err
		}

		conversationID, found, err := p.resolve(ctx, domainsync.EntityConversations, rec.TicketExternalID)
		if err != nil {
			return err
		}
		if !found {
			result.Orphaned++
			continue
		}

		authorKind, authorID, err := p.classifyAuthor(ctx, rec.AuthorExternalID)
		if err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityMessages, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveMessage(ctx, ports.Message{
			MessageID:      id,
			ConversationID: conversationID,
			AuthorKind:     authorKind,
			AuthorID:       authorID,
			Visibility:     visibilityForOrigin(rec.OriginType),
			Body:           rec.Body,
			CreatedAt:      p.orNow(rec.CreatedAt),
			UpdatedAt:      p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityMessages, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityMessages, 1)

		for _, att := range rec.Attachments {
			if att.ExternalID == "" {
				result.Skipped++
				continue
			}
			attID, err := p.resolveOrNew(ctx, domainsync.EntityAttachments, att.ExternalID)
			if err != nil {
				return err
			}
			err = s.canon.SaveAttachment(ctx, ports.Attachment{
				AttachmentID: attID,
				MessageID:    id,
				FileName:     att.FileName,
				ContentType:  att.ContentType,
				SizeBytes:    att.SizeBytes,
				URL:          att.URL,
				CreatedAt:    p.now,
			})
			if err != nil {
				return err
			}
			if err := p.bind(ctx, domainsync.EntityAttachments, att.ExternalID, attID); err != nil {
				return err
			}
		}
	}
	return nil
}

// classifyAuthor is a pure function of which mapping table resolves the
// external author ID: staff first, then customers, else system. No flag
// on the message itself is consulted.
func (p *pass) classifyAuthor(ctx context.Context, authorExternalID string) (string, *string, error) {
	if authorExternalID == "" {
		return domainsync.AuthorKindSystem, nil, nil
	}
	if id, found, err := p.resolve(ctx, domainsync.EntityUsers, authorExternalID); err != nil {
		return "", nil, err
	} else if found {
		return domainsync.AuthorKindUser, &id, nil
	}
	if id, found, err := p.resolve(ctx, domainsync.EntityCustomers, authorExternalID); err != nil {
		return "", nil, err
	} else if found {
		return domainsync.AuthorKindCustomer, &id, nil
	}
	return domainsync.AuthorKindSystem, nil, nil
}

func visibilityForOrigin(originType string) string {
	if strings.EqualFold(strings.TrimSpace(originType), "note") {
		return domainsync.VisibilityInternal
	}
	return domainsync.VisibilityPublic
}
