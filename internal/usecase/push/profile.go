package push

import (
	"errors"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	domainsync "deskbridge/internal/domain/sync"
)

type profileTables struct {
	Status   map[string]string `toml:"status"`
	Priority map[string]string `toml:"priority"`
}

type pushProfile struct {
	Version   int                      `toml:"version"`
	Providers map[string]profileTables `toml:"providers"`
}

// loadPushProfile reads optional per-provider vocabulary overrides. An
// empty path means "built-ins only".
func loadPushProfile(path string) (pushProfile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return pushProfile{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return pushProfile{}, err
	}

	var profile pushProfile
	if err := toml.Unmarshal(raw, &profile); err != nil {
		return pushProfile{}, err
	}
	if profile.Version != 1 {
		return pushProfile{}, errors.New("unsupported push profile version: expected version = 1")
	}
	return profile, nil
}

// vocabularyFor overlays profile tables on the built-in provider
// vocabulary. Overrides only touch the outbound direction: inbound
// normalization stays canonical.
func (p pushProfile) vocabularyFor(provider string) domainsync.Vocabulary {
	vocab := domainsync.VocabularyFor(provider)

	tables, ok := p.Providers[strings.ToLower(provider)]
	if !ok {
		return vocab
	}

	if len(tables.Status) > 0 {
		merged := make(map[string]string, len(vocab.StatusOut)+len(tables.Status))
		for k, v := range vocab.StatusOut {
			merged[k] = v
		}
		for k, v := range tables.Status {
			merged[strings.ToLower(k)] = v
		}
		vocab.StatusOut = merged
	}
	if len(tables.Priority) > 0 {
		merged := make(map[string]string, len(vocab.PriorityOut)+len(tables.Priority))
		for k, v := range vocab.PriorityOut {
			merged[k] = v
		}
		for k, v := range tables.Priority {
			merged[strings.ToLower(k)] = v
		}
		vocab.PriorityOut = merged
	}
	return vocab
}
