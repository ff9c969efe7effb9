package push

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPushProfileEmptyPathMeansBuiltins(t *testing.T) {
	profile, err := loadPushProfile("")
	if err != nil {
		t.Fatalf("loadPushProfile: %v", err)
	}
	if len(profile.Providers) != 0 {
		t.Fatalf("empty path produced providers: %+v", profile.Providers)
	}

	vocab := profile.vocabularyFor("zendesk")
	if vocab.TranslateStatus("solved") != "solved" {
		t.Fatalf("builtin vocabulary not intact")
	}
}

func TestLoadPushProfileRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "push.toml")
	if err := os.WriteFile(path, []byte("version = 2\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	_, err := loadPushProfile(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected a version error, got %v", err)
	}
}

func TestVocabularyForOverlayKeepsUnlistedEntries(t *testing.T) {
	profile := pushProfile{
		Version: 1,
		Providers: map[string]profileTables{
			"zendesk": {Status: map[string]string{"Solved": "completed"}},
		},
	}

	vocab := profile.vocabularyFor("zendesk")
	if vocab.TranslateStatus("solved") != "completed" {
		t.Fatalf("override key not case-folded")
	}
	if vocab.TranslateStatus("pending") != "pending" {
		t.Fatalf("overlay dropped builtin entries")
	}
	if vocab.NormalizeStatus("solved") == "" {
		t.Fatalf("inbound direction must stay canonical")
	}
}
