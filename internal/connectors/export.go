package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/staging"
)

// FetchFunc pulls per-entity record batches from a vendor API. It is the
// opaque export-function boundary: tests and alternative transports swap
// it out, and the core never sees vendor HTTP details.
type FetchFunc func(ctx context.Context, creds Credentials, prior domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error)

// writeBatches stages every fetched batch and returns per-entity counts.
// Entities the fetch did not produce still get an empty batch file so a
// later ingest sees a complete, fresh staging directory.
func writeBatches(dir string, batches map[domainsync.EntityType][]json.RawMessage) (domainsync.Counts, error) {
	counts := domainsync.Counts{}
	for _, entity := range domainsync.DependencyOrder {
		records := batches[entity]
		if err := staging.WriteBatch(dir, entity, records); err != nil {
			return nil, err
		}
		counts.Add(entity, len(records))
	}
	return counts, nil
}

type endpoint struct {
	path string
	key  string
}

// fetchEndpoints performs one authenticated GET per entity endpoint and
// collects the JSON array found under each endpoint's key.
func fetchEndpoints(ctx context.Context, client *http.Client, baseURL string, authorize func(*http.Request), endpoints map[domainsync.EntityType]endpoint) (map[domainsync.EntityType][]json.RawMessage, error) {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	batches := make(map[domainsync.EntityType][]json.RawMessage, len(endpoints))
	for entity, ep := range endpoints {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+ep.path, nil)
		if err != nil {
			return nil, errs.Wrapf(err, "build %s request", entity)
		}
		authorize(req)
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, errs.Wrapf(err, "fetch %s", entity)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, errs.Wrapf(err, "read %s response", entity)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", entity, resp.StatusCode)
		}

		records, err := extractArray(body, ep.key)
		if err != nil {
			return nil, errs.Wrapf(err, "decode %s response", entity)
		}
		batches[entity] = records
	}
	return batches, nil
}

func extractArray(body []byte, key string) ([]json.RawMessage, error) {
	if key == "" {
		var records []json.RawMessage
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[key]
	if !ok {
		return nil, errors.New("response key " + key + " missing")
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}
