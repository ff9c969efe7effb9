package ingest

import (
	"context"
	"encoding/json"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

// Directory-level entities: no cross-entity references beyond workspace.
// Each follows the same shape: touch raw, resolve-or-mint, save, bind.

func (s *Service) ingestGroups(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.GroupRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityGroups, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityGroups, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveGroup(ctx, ports.Group{
			GroupID:     id,
			WorkspaceID: p.workspace.WorkspaceID,
			Name:        rec.Name,
			CreatedAt:   p.orNow(rec.CreatedAt),
			UpdatedAt:   p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityGroups, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityGroups, 1)
	}
	return nil
}

func (s *Service) ingestOrganizations(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.OrganizationRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityOrganizations, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityOrganizations, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveOrganization(ctx, ports.Organization{
			OrganizationID: id,
			WorkspaceID:    p.workspace.WorkspaceID,
			Name:           rec.Name,
			Domain:         rec.Domain,
			Notes:          rec.Notes,
			CreatedAt:      p.orNow(rec.CreatedAt),
			UpdatedAt:      p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityOrganizations, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityOrganizations, 1)
	}
	return nil
}

func (s *Service) ingestBrands(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.BrandRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityBrands, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityBrands, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveBrand(ctx, ports.Brand{
			BrandID:     id,
			WorkspaceID: p.workspace.WorkspaceID,
			Name:        rec.Name,
			Subdomain:   rec.Subdomain,
			CreatedAt:   p.orNow(rec.CreatedAt),
			UpdatedAt:   p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityBrands, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityBrands, 1)
	}
	return nil
}

func (s *Service) ingestTicketForms(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.TicketFormRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityTicketForms, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityTicketForms, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveTicketForm(ctx, ports.TicketForm{
			TicketFormID: id,
			WorkspaceID:  p.workspace.WorkspaceID,
			Name:         rec.Name,
			Position:     rec.Position,
			CreatedAt:    p.orNow(rec.CreatedAt),
			UpdatedAt:    p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityTicketForms, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityTicketForms, 1)
	}
	return nil
}

func (s *Service) ingestCustomFields(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.CustomFieldRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityCustomFields, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityCustomFields, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveCustomField(ctx, ports.CustomField{
			CustomFieldID: id,
			WorkspaceID:   p.workspace.WorkspaceID,
			Name:          rec.Name,
			FieldType:     rec.FieldType,
			CreatedAt:     p.orNow(rec.CreatedAt),
			UpdatedAt:     p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityCustomFields, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityCustomFields, 1)
	}
	return nil
}

func (s *Service) ingestViews(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.ViewRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityViews, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityViews, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveView(ctx, ports.View{
			ViewID:      id,
			WorkspaceID: p.workspace.WorkspaceID,
			Name:        rec.Name,
			Definition:  rec.Definition,
			CreatedAt:   p.orNow(rec.CreatedAt),
			UpdatedAt:   p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityViews, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityViews, 1)
	}
	return nil
}

func (s *Service) ingestSLAPolicies(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.SLAPolicyRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntitySLAPolicies, rec.ExternalID, raw); err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntitySLAPolicies, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveSLAPolicy(ctx, ports.SLAPolicy{
			SLAPolicyID: id,
			WorkspaceID: p.workspace.WorkspaceID,
			Name:        rec.Name,
			Definition:  rec.Definition,
			CreatedAt:   p.orNow(rec.CreatedAt),
			UpdatedAt:   p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntitySLAPolicies, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntitySLAPolicies, 1)
	}
	return nil
}
