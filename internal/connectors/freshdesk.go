package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	domainsync "deskbridge/internal/domain/sync"
)

// Freshdesk re-exports in full on every cycle; a prior cursor is ignored.
type Freshdesk struct {
	Fetch FetchFunc
}

func NewFreshdesk() *Freshdesk {
	f := &Freshdesk{}
	f.Fetch = f.fetchHTTP
	return f
}

func (f *Freshdesk) Name() string              { return "freshdesk" }
func (f *Freshdesk) Incremental() bool         { return false }
func (f *Freshdesk) DefaultStagingDir() string { return "freshdesk" }

func (f *Freshdesk) CredentialVars() []CredentialVar {
	return []CredentialVar{
		{Env: "FRESHDESK_DOMAIN", Key: "domain"},
		{Env: "FRESHDESK_API_KEY", Key: "api_key"},
	}
}

func (f *Freshdesk) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	if f.Fetch == nil {
		return ExportResult{}, errors.New("freshdesk fetch is not configured")
	}

	batches, _, err := f.Fetch(ctx, req.Credentials, nil)
	if err != nil {
		return ExportResult{}, err
	}

	counts, err := writeBatches(req.StagingDir, batches)
	if err != nil {
		return ExportResult{}, err
	}
	// Full re-export: no cursor state at all.
	return ExportResult{Counts: counts}, nil
}

var freshdeskEndpoints = map[domainsync.EntityType]endpoint{
	domainsync.EntityGroups:        {path: "/api/v2/groups", key: ""},
	domainsync.EntityOrganizations: {path: "/api/v2/companies", key: ""},
	domainsync.EntityCustomers:     {path: "/api/v2/contacts", key: ""},
	domainsync.EntityTicketForms:   {path: "/api/v2/ticket-forms", key: ""},
	domainsync.EntityCustomFields:  {path: "/api/v2/ticket_fields", key: ""},
	domainsync.EntitySLAPolicies:   {path: "/api/v2/sla_policies", key: ""},
	domainsync.EntityTickets:       {path: "/api/v2/tickets", key: ""},
	domainsync.EntityCsatRatings:   {path: "/api/v2/surveys/satisfaction_ratings", key: ""},
	domainsync.EntityTimeEntries:   {path: "/api/v2/time_entries", key: ""},
	domainsync.EntityMessages:      {path: "/api/v2/conversations", key: ""},
	domainsync.EntityKBArticles:    {path: "/api/v2/solutions/articles", key: ""},
	domainsync.EntityRules:         {path: "/api/v2/automations", key: ""},
}

func (f *Freshdesk) fetchHTTP(ctx context.Context, creds Credentials, _ domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
	baseURL := fmt.Sprintf("https://%s.freshdesk.com", creds["domain"])
	authorize := func(req *http.Request) {
		req.SetBasicAuth(creds["api_key"], "X")
	}

	batches, err := fetchEndpoints(ctx, nil, baseURL, authorize, freshdeskEndpoints)
	if err != nil {
		return nil, nil, err
	}
	return batches, nil, nil
}
