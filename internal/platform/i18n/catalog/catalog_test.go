package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got, ok := bundle.Message("en-US", "teams.form.create_success"); !ok || got != "Team created successfully!" {
		t.Fatalf("Message(en-US) = (%q, %t)", got, ok)
	}
	if got, ok := bundle.Message("pt-BR", "app.name"); !ok || got != "OctoFit Tracker" {
		t.Fatalf("Message(pt-BR fallback) = (%q, %t)", got, ok)
	}
}

func TestEmbeddedCatalogsCoverResourceKeys(t *testing.T) {
	t.Parallel()

	bundle := Default()
	for _, key := range []string{
		"activities.title", "activities.delete.prompt", "teams.form.join_success",
		"users.loading", "workouts.form.title", "field.suggested_for",
	} {
		if _, ok := bundle.Message(BaseLocale, key); !ok {
			t.Fatalf("missing key %q", key)
		}
	}
}

func TestRegisterFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	_ = Default()
	printer := message.NewPrinter(language.BrazilianPortuguese)
	if got := printer.Sprintf("teams.title"); got != "Equipes" {
		t.Fatalf("pt-BR teams.title = %q", got)
	}
	if got := printer.Sprintf("field.id"); got != "ID" {
		t.Fatalf("pt-BR field.id = %q, want base locale text", got)
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/resources.yaml"), `locale: "en-US"
namespace: "resources"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsInvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name: "namespace mismatch",
			files: map[string]string{"locales/en-US/web.yaml": `locale: "en-US"
namespace: "other"
messages:
  "a": "b"
`},
		},
		{
			name: "missing base locale",
			files: map[string]string{"locales/pt-BR/web.yaml": `locale: "pt-BR"
namespace: "web"
messages:
  "a": "b"
`},
		},
		{
			name: "key absent from base",
			files: map[string]string{
				"locales/en-US/web.yaml": "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n  \"a\": \"b\"\n",
				"locales/pt-BR/web.yaml": "locale: \"pt-BR\"\nnamespace: \"web\"\nmessages:\n  \"c\": \"d\"\n",
			},
		},
		{
			name:  "malformed yaml",
			files: map[string]string{"locales/en-US/web.yaml": "locale: [\n"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tempDir := t.TempDir()
			for name, content := range tc.files {
				mustWriteFile(t, filepath.Join(tempDir, name), content)
			}
			if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
