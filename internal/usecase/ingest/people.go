package ingest

import (
	"context"
	"encoding/json"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

// ingestCustomers handles the customers batch. Records flagged as staff
// are additionally materialized as Users under their own object-type
// mapping, so the same external person ID resolves in both maps.
func (s *Service) ingestCustomers(ctx context.Context, p *pass, records []json.RawMessage, result *Result) error {
	for _, raw := range records {
		var rec staging.CustomerRecord
		if json.Unmarshal(raw, &rec) != nil || rec.ExternalID == "" {
			result.Skipped++
			continue
		}
		if err := p.touchRaw(ctx, domainsync.EntityCustomers, rec.ExternalID, raw); err != nil {
			return err
		}

		orgID, err := p.resolveOptional(ctx, domainsync.EntityOrganizations, rec.OrganizationExternalID)
		if err != nil {
			return err
		}

		id, err := p.resolveOrNew(ctx, domainsync.EntityCustomers, rec.ExternalID)
		if err != nil {
			return err
		}
		err = s.canon.SaveCustomer(ctx, ports.Customer{
			CustomerID:     id,
			WorkspaceID:    p.workspace.WorkspaceID,
			OrganizationID: orgID,
			Name:           rec.Name,
			Email:          rec.Email,
			Phone:          rec.Phone,
			CreatedAt:      p.orNow(rec.CreatedAt),
			UpdatedAt:      p.orNow(rec.UpdatedAt),
		})
		if err != nil {
			return err
		}
		if err := p.bind(ctx, domainsync.EntityCustomers, rec.ExternalID, id); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityCustomers, 1)

		if !rec.Staff {
			continue
		}
		if err := s.ingestStaffUser(ctx, p, rec); err != nil {
			return err
		}
		result.Counts.Add(domainsync.EntityUsers, 1)
	}
	return nil
}

func (s *Service) ingestStaffUser(ctx context.Context, p *pass, rec staging.CustomerRecord) error {
	groupID, err := p.resolveOptional(ctx, domainsync.EntityGroups, rec.GroupExternalID)
	if err != nil {
		return err
	}

	role := rec.Role
	if role == "" {
		role = "agent"
	}

	id, err := p.resolveOrNew(ctx, domainsync.EntityUsers, rec.ExternalID)
	if err != nil {
		return err
	}
	err = s.canon.SaveUser(ctx, ports.User{
		UserID:      id,
		WorkspaceID: p.workspace.WorkspaceID,
		GroupID:     groupID,
		Name:        rec.Name,
		Email:       rec.Email,
		Role:        role,
		CreatedAt:   p.orNow(rec.CreatedAt),
		UpdatedAt:   p.orNow(rec.UpdatedAt),
	})
	if err != nil {
		return err
	}
	return p.bind(ctx, domainsync.EntityUsers, rec.ExternalID, id)
}
