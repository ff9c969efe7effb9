package connectors

import (
	"errors"
	"strings"
	"testing"

	domainsync "deskbridge/internal/domain/sync"
)

func TestResolveCredentialsReadsEnvironment(t *testing.T) {
	t.Setenv("FRESHDESK_DOMAIN", "acme")
	t.Setenv("FRESHDESK_API_KEY", "secret")

	creds, err := ResolveCredentials(NewFreshdesk())
	if err != nil {
		t.Fatalf("ResolveCredentials() error = %v", err)
	}
	if creds["domain"] != "acme" || creds["api_key"] != "secret" {
		t.Fatalf("creds = %v", creds)
	}
}

func TestResolveCredentialsMissingVarNamesConnectorAndVar(t *testing.T) {
	t.Setenv("ZENDESK_SUBDOMAIN", "acme")
	t.Setenv("ZENDESK_EMAIL", "ops@acme.test")
	t.Setenv("ZENDESK_API_TOKEN", "")

	_, err := ResolveCredentials(NewZendesk())
	if !errors.Is(err, domainsync.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
	if !strings.Contains(err.Error(), "zendesk") {
		t.Fatalf("error should name the connector, got: %v", err)
	}
	if !strings.Contains(err.Error(), "ZENDESK_API_TOKEN") {
		t.Fatalf("error should name the variable, got: %v", err)
	}
}

func TestResolveCredentialsNeverReturnsPartialSet(t *testing.T) {
	t.Setenv("KAYAKO_DOMAIN", "support")
	t.Setenv("KAYAKO_EMAIL", "")
	t.Setenv("KAYAKO_PASSWORD", "")

	creds, err := ResolveCredentials(NewKayako())
	if err == nil {
		t.Fatalf("expected error for missing variables")
	}
	if creds != nil {
		t.Fatalf("creds = %v, want nil on failure", creds)
	}
}
