package languages

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var localePattern = regexp.MustCompile(`^[a-z]{2,3}-[A-Z]{2}$`)

func TestDefaultCatalogLocaleCodes(t *testing.T) {
	t.Parallel()

	c := NewDefaultCatalog()
	for _, e := range c.List() {
		got, err := c.Resolve(e.DisplayName)
		if err != nil {
			t.Fatalf("resolve %q: %v", e.DisplayName, err)
		}
		if !localePattern.MatchString(got.LocaleCode) {
			t.Errorf("%q: locale %q does not match %s", e.DisplayName, got.LocaleCode, localePattern)
		}
		if got.Key == "" {
			t.Errorf("%q: empty key", e.DisplayName)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewDefaultCatalog()
	first, err := c.Resolve("French")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Resolve("French")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolve not idempotent (-first +second):\n%s", diff)
	}
	want := Entry{DisplayName: "French", Key: "french", LocaleCode: "fr-FR"}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("unexpected entry (-want +got):\n%s", diff)
	}
}

func TestResolveUnknownLanguage(t *testing.T) {
	t.Parallel()

	_, err := NewDefaultCatalog().Resolve("Klingon")
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestDistinctLabelsShareKey(t *testing.T) {
	t.Parallel()

	c := NewDefaultCatalog()
	us, _ := c.Resolve("English")
	uk, _ := c.Resolve("English (UK)")
	if us.Key != uk.Key {
		t.Fatalf("expected shared key, got %q and %q", us.Key, uk.Key)
	}
	if us.LocaleCode == uk.LocaleCode {
		t.Fatalf("expected distinct locales, both %q", us.LocaleCode)
	}
}

func TestNewCatalogDeduplicates(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Entry{
		{"Swedish", "swedish", "sv-SE"},
		{"Thai", "thai", "th-TH"},
		{"Swedish", "swedish", "sv-FI"},
	})

	got := c.List()
	want := []Entry{
		{"Swedish", "swedish", "sv-SE"},
		{"Thai", "thai", "th-TH"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}

	e, _ := c.Resolve("Swedish")
	if e.LocaleCode != "sv-SE" {
		t.Fatalf("first entry should win, got %q", e.LocaleCode)
	}
}

func TestDefaultVoice(t *testing.T) {
	if got := DefaultVoice(Entry{LocaleCode: "de-DE"}); got != "de-DE-Standard-A" {
		t.Fatalf("unexpected voice %q", got)
	}
}
