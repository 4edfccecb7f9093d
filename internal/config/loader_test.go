package config

import "testing"

func TestLoadWithNoFileReturnsDocumentedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Defaults.ValidFor.Seconds() != 86400 {
		t.Fatalf("expected default ValidFor 86400, got %d", cfg.Defaults.ValidFor.Seconds())
	}
	if !cfg.Defaults.Minify || !cfg.Defaults.Compress || !cfg.Defaults.ETag {
		t.Fatalf("all feature flags should default to true, got %+v", cfg.Defaults)
	}
	if len(cfg.Defaults.CacheControl) != 1 || cfg.Defaults.CacheControl[0] != "public" {
		t.Fatalf("expected default cache-control [public], got %v", cfg.Defaults.CacheControl)
	}
	if len(cfg.IndexFiles) != 1 || cfg.IndexFiles[0] != "index.html" {
		t.Fatalf("expected default index files [index.html], got %v", cfg.IndexFiles)
	}
	if cfg.Global.ListenPort != 8080 {
		t.Fatalf("expected default listen port 8080, got %d", cfg.Global.ListenPort)
	}
}

func TestLoadParsesValidForAsDurationString(t *testing.T) {
	path := writeTempConfig(t, `
[Defaults]
ValidFor = "1h"
Minify = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Defaults.ValidFor.Seconds() != 3600 {
		t.Fatalf("expected ValidFor 3600s, got %d", cfg.Defaults.ValidFor.Seconds())
	}
	if cfg.Defaults.Minify {
		t.Fatalf("explicit Minify=false should not be overridden by defaults")
	}
	if !cfg.Defaults.Compress {
		t.Fatalf("unset Compress should still default to true")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	path := writeTempConfig(t, `
[Defaults]
ValidFor = "boom"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unparsable ValidFor")
	}
}

func TestLoadNormalizesTypeExtensionKeys(t *testing.T) {
	path := writeTempConfig(t, `
[Types.less]
ContentType = "text/stylesheet-less"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	override, ok := cfg.Types[".less"]
	if !ok {
		t.Fatalf("expected extension key to be normalized to \".less\", got %v", cfg.Types)
	}
	if override.ContentType != "text/stylesheet-less" {
		t.Fatalf("unexpected content type: %s", override.ContentType)
	}
}

func TestLoadAllowsNegativeValidFor(t *testing.T) {
	path := writeTempConfig(t, `
[Defaults]
ValidFor = "-10s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should accept a negative ValidFor: %v", err)
	}
	if cfg.Defaults.ValidFor.Seconds() != -10 {
		t.Fatalf("expected ValidFor -10s, got %d", cfg.Defaults.ValidFor.Seconds())
	}
}

func TestLoadRejectsInvalidListenPort(t *testing.T) {
	path := writeTempConfig(t, `
ListenPort = 99999
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an out-of-range listen port")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/config.toml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
