package sync

import "testing"

func TestVocabularyNormalizeRoundTrip(t *testing.T) {
	vocab := VocabularyFor("zendesk")

	if got := vocab.NormalizeStatus("Hold"); got != StatusOnHold {
		t.Fatalf("NormalizeStatus(Hold) = %q, want %q", got, StatusOnHold)
	}
	if got := vocab.TranslateStatus(StatusOnHold); got != "hold" {
		t.Fatalf("TranslateStatus(on_hold) = %q, want hold", got)
	}
}

func TestVocabularyFallbackNeverBlank(t *testing.T) {
	vocab := VocabularyFor("zendesk")

	if got := vocab.TranslateStatus("no-such-status"); got != "open" {
		t.Fatalf("status fallback = %q, want open", got)
	}
	if got := vocab.TranslatePriority(""); got != "normal" {
		t.Fatalf("priority fallback = %q, want normal", got)
	}
	if got := vocab.NormalizeStatus("???"); got != StatusOpen {
		t.Fatalf("normalize fallback = %q, want %q", got, StatusOpen)
	}
	if got := vocab.NormalizePriority("???"); got != PriorityNormal {
		t.Fatalf("normalize priority fallback = %q, want %q", got, PriorityNormal)
	}
}

func TestVocabularyFreshdeskNumericCodes(t *testing.T) {
	vocab := VocabularyFor("freshdesk")

	if got := vocab.NormalizeStatus("5"); got != StatusClosed {
		t.Fatalf("NormalizeStatus(5) = %q, want %q", got, StatusClosed)
	}
	if got := vocab.TranslatePriority(PriorityUrgent); got != "4" {
		t.Fatalf("TranslatePriority(urgent) = %q, want 4", got)
	}
}

func TestVocabularyUnknownProviderNormalizes(t *testing.T) {
	vocab := VocabularyFor("somedesk")
	if got := vocab.NormalizeStatus("solved"); got != StatusSolved {
		t.Fatalf("NormalizeStatus(solved) = %q, want %q", got, StatusSolved)
	}
}
