package staging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
)

// ManifestFileName is the completion marker a connector writes last.
const ManifestFileName = "manifest.json"

// ManifestPath returns the manifest location inside a staging directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFileName)
}

// WriteManifest persists the post-export manifest. It is written last,
// after all batches, so a manifest's presence implies a complete export.
func WriteManifest(dir string, manifest domainsync.Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, "create staging directory %q", dir)
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errs.Wrap(err, "marshal manifest")
	}

	if err := os.WriteFile(ManifestPath(dir), raw, 0o644); err != nil {
		return errs.Wrap(err, "write manifest")
	}
	return nil
}

// ReadManifest loads the prior run's manifest. An absent or unparsable
// manifest is treated as "no prior run": ok=false, nil error. Status and
// cursor resumption both rely on this never failing.
func ReadManifest(dir string) (domainsync.Manifest, bool, error) {
	raw, err := os.ReadFile(ManifestPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domainsync.Manifest{}, false, nil
		}
		return domainsync.Manifest{}, false, errs.Wrap(err, "read manifest")
	}

	var manifest domainsync.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return domainsync.Manifest{}, false, nil
	}
	return manifest, true, nil
}
