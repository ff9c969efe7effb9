package connectors

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	domainsync "deskbridge/internal/domain/sync"
)

// CredentialVar names one required environment variable and the logical
// key it resolves to (e.g. ZENDESK_SUBDOMAIN -> subdomain).
type CredentialVar struct {
	Env string
	Key string
}

// Credentials is the fully resolved credential set for one connector.
// It is only ever complete: resolution fails before any partial set is
// passed downstream.
type Credentials map[string]string

var loadDotEnvOnce sync.Once

// ResolveCredentials reads every required variable for the connector from
// the environment (after a best-effort .env load). Any missing variable
// fails the whole resolution with an error naming connector and variable.
func ResolveCredentials(c Connector) (Credentials, error) {
	loadDotEnvOnce.Do(func() {
		// Missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})

	creds := make(Credentials, len(c.CredentialVars()))
	for _, v := range c.CredentialVars() {
		value := strings.TrimSpace(os.Getenv(v.Env))
		if value == "" {
			return nil, fmt.Errorf("%w: connector %q requires %s", domainsync.ErrMissingCredential, c.Name(), v.Env)
		}
		creds[v.Key] = value
	}
	return creds, nil
}
