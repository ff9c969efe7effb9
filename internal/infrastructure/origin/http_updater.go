package origin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"deskbridge/internal/connectors"
	"deskbridge/internal/errs"
	"deskbridge/internal/ports"
)

// HTTPUpdater writes translated ticket updates back through each
// provider's ticket API. Credentials come from the same environment
// resolution the export path uses.
type HTTPUpdater struct {
	client *http.Client
}

func NewHTTPUpdater() *HTTPUpdater {
	return &HTTPUpdater{client: &http.Client{Timeout: 30 * time.Second}}
}

func (u *HTTPUpdater) UpdateTicket(ctx context.Context, update ports.OriginTicketUpdate) error {
	connector, err := connectors.Lookup(update.Provider)
	if err != nil {
		return err
	}
	creds, err := connectors.ResolveCredentials(connector)
	if err != nil {
		return err
	}

	req, err := buildUpdateRequest(ctx, update, creds)
	if err != nil {
		return err
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return errs.Wrapf(err, "update %s ticket %s", update.Provider, update.ExternalID)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update %s ticket %s: unexpected status %d", update.Provider, update.ExternalID, resp.StatusCode)
	}
	return nil
}

func buildUpdateRequest(ctx context.Context, update ports.OriginTicketUpdate, creds connectors.Credentials) (*http.Request, error) {
	var (
		url      string
		body     any
		user     string
		password string
	)

	switch update.Provider {
	case "zendesk":
		url = fmt.Sprintf("https://%s.zendesk.com/api/v2/tickets/%s.json", creds["subdomain"], update.ExternalID)
		body = map[string]any{"ticket": map[string]string{
			"status":   update.Status,
			"priority": update.Priority,
			"assignee": update.Assignee,
		}}
		user = creds["email"] + "/token"
		password = creds["token"]
	case "freshdesk":
		url = fmt.Sprintf("https://%s.freshdesk.com/api/v2/tickets/%s", creds["domain"], update.ExternalID)
		body = map[string]string{
			"status":   update.Status,
			"priority": update.Priority,
			"assignee": update.Assignee,
		}
		user = creds["api_key"]
		password = "X"
	case "kayako":
		url = fmt.Sprintf("https://%s.kayako.com/api/v1/cases/%s", creds["domain"], update.ExternalID)
		body = map[string]string{
			"status":   update.Status,
			"priority": update.Priority,
			"assignee": update.Assignee,
		}
		user = creds["email"]
		password = creds["password"]
	default:
		return nil, fmt.Errorf("no origin update endpoint for provider %q", update.Provider)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "encode origin update")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(err, "build origin update request")
	}
	req.SetBasicAuth(user, password)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
