package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	secret, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if secret != "from-file" {
		t.Fatalf("expected file secret, got %q", secret)
	}
}

func TestLoadEmptyFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected error for missing secret file")
	}
}

func TestLoadInlineValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  inline  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if secret != "inline" {
		t.Fatalf("expected inline secret, got %q", secret)
	}
}

func TestLoadEnvFallback(t *testing.T) {
	t.Setenv("ADVISOR_TEST_SECRET", " from-env ")

	secret, err := Load(Source{Name: "api key", Env: "ADVISOR_TEST_SECRET"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if secret != "from-env" {
		t.Fatalf("expected env secret, got %q", secret)
	}
}

func TestLoadNothingConfigured(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatal("expected error when nothing configured")
	}
}
