package ingest

import (
	"context"
	"encoding/json"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

func (s *Service) ingestKBArticles(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.KBArticleRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityKBArticles, rec.ExternalID, raw); err != nil {
			return err
		}

		state := rec.State
		if state == "" {
			state = "draft"
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityKBArticles, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveKBArticle(ctx, ports.KBArticle{
			KBArticleID: id,
			WorkspaceID: p.workspace.WorkspaceID,
			Title:       rec.Title,
			Body:        rec.Body,
			State:       state,
			CreatedAt:   p.orNow(rec.CreatedAt),
			UpdatedAt:   p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityKBArticles, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityKBArticles, 1)
	}
	return nil
}

func (s *Service) ingestRules(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.RuleRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityRules, rec.ExternalID, raw); err != nil {
			return err
		}

		active := true
		if rec.Active != nil {
			active = *rec.Active
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityRules, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveRule(ctx, ports.Rule{
			RuleID:      id,
			WorkspaceID: p.workspace.WorkspaceID,
			Name:        rec.Name,
			Definition:  rec.Definition,
			Active:      active,
			CreatedAt:   p.orNow(rec.CreatedAt),
			UpdatedAt:   p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityRules, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityRules, 1)
	}
	return nil
}
