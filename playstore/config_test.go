package playstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawler.yaml")
	data := `
browser:
  headful: true
  resource_blocking: [images, fonts]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if !cfg.Browser.Headful {
		t.Error("headful not read")
	}
	if len(cfg.Browser.ResourceBlocking) != 2 {
		t.Errorf("resource_blocking: got %v", cfg.Browser.ResourceBlocking)
	}

	// Unset fields pick up defaults.
	if cfg.Browser.NavTimeout != 30*time.Second {
		t.Errorf("nav_timeout default: got %v", cfg.Browser.NavTimeout)
	}
	if cfg.Scrape.IconTimeout != 10*time.Second {
		t.Errorf("icon_timeout default: got %v", cfg.Scrape.IconTimeout)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
