package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	domainsync "deskbridge/internal/domain/sync"
)

// Kayako re-exports in full on every cycle; a prior cursor is ignored.
type Kayako struct {
	Fetch FetchFunc
}

func NewKayako() *Kayako {
	k := &Kayako{}
	k.Fetch = k.fetchHTTP
	return k
}

func (k *Kayako) Name() string              { return "kayako" }
func (k *Kayako) Incremental() bool         { return false }
func (k *Kayako) DefaultStagingDir() string { return "kayako" }

func (k *Kayako) CredentialVars() []CredentialVar {
	return []CredentialVar{
		{Env: "KAYAKO_DOMAIN", Key: "domain"},
		{Env: "KAYAKO_EMAIL", Key: "email"},
		{Env: "KAYAKO_PASSWORD", Key: "password"},
	}
}

func (k *Kayako) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	if k.Fetch == nil {
		return ExportResult{}, errors.New("kayako fetch is not configured")
	}

	batches, _, err := k.Fetch(ctx, req.Credentials, nil)
	if err != nil {
		return ExportResult{}, err
	}

	counts, err := writeBatches(req.StagingDir, batches)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Counts: counts}, nil
}

var kayakoEndpoints = map[domainsync.EntityType]endpoint{
	domainsync.EntityGroups:        {path: "/api/v1/teams.json", key: "data"},
	domainsync.EntityOrganizations: {path: "/api/v1/organizations.json", key: "data"},
	domainsync.EntityCustomers:     {path: "/api/v1/users.json", key: "data"},
	domainsync.EntityBrands:        {path: "/api/v1/brands.json", key: "data"},
	domainsync.EntityCustomFields:  {path: "/api/v1/cases/fields.json", key: "data"},
	domainsync.EntityViews:         {path: "/api/v1/views.json", key: "data"},
	domainsync.EntitySLAPolicies:   {path: "/api/v1/slas.json", key: "data"},
	domainsync.EntityTickets:       {path: "/api/v1/cases.json", key: "data"},
	domainsync.EntityMessages:      {path: "/api/v1/cases/posts.json", key: "data"},
	domainsync.EntityKBArticles:    {path: "/api/v1/articles.json", key: "data"},
	domainsync.EntityRules:         {path: "/api/v1/automations.json", key: "data"},
}

func (k *Kayako) fetchHTTP(ctx context.Context, creds Credentials, _ domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
	baseURL := fmt.Sprintf("https://%s.kayako.com", creds["domain"])
	authorize := func(req *http.Request) {
		req.SetBasicAuth(creds["email"], creds["password"])
	}

	batches, err := fetchEndpoints(ctx, nil, baseURL, authorize, kayakoEndpoints)
	if err != nil {
		return nil, nil, err
	}
	return batches, nil, nil
}
