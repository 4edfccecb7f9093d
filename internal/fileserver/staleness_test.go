package fileserver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Invariant 2: a sidecar older than its source is stale and must be
// deleted and regenerated, not served as-is.

func TestRunMinifyRegeneratesStaleSidecar(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "style.css", []byte("body {\n  color: red;\n}\n"))

	sidecar := filepath.Join(root, "style.min.css")
	if err := os.WriteFile(sidecar, []byte("body{color:stale}"), 0o644); err != nil {
		t.Fatalf("write stale sidecar: %v", err)
	}
	stale := time.Now().Add(-1 * time.Hour)
	if err := os.Chtimes(sidecar, stale, stale); err != nil {
		t.Fatalf("age sidecar: %v", err)
	}

	core := newTestCore(t, root, nil)
	resp, err := core.Handle(context.Background(), Request{Method: "GET", Path: "/style.css"})
	if err != nil {
		t.Fatalf("handle error: %v", err)
	}
	body := readBody(t, resp)
	if bytes.Contains(body, []byte("stale")) {
		t.Fatalf("expected regenerated minified body, got stale contents: %q", body)
	}

	info, err := os.Stat(sidecar)
	if err != nil {
		t.Fatalf("stat sidecar: %v", err)
	}
	if info.ModTime().Equal(stale) {
		t.Fatalf("sidecar was not regenerated, mod time unchanged")
	}
}

func TestRunCompressRegeneratesStaleSidecar(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "data.txt", bytes.Repeat([]byte("x"), 4096))

	sidecar := filepath.Join(root, "data.txt.gz")
	if err := os.WriteFile(sidecar, []byte("not actually gzip"), 0o644); err != nil {
		t.Fatalf("write stale sidecar: %v", err)
	}
	stale := time.Now().Add(-1 * time.Hour)
	if err := os.Chtimes(sidecar, stale, stale); err != nil {
		t.Fatalf("age sidecar: %v", err)
	}

	core := newTestCore(t, root, nil)
	resp, err := core.Handle(context.Background(), Request{
		Method:         "GET",
		Path:           "/data.txt",
		AcceptEncoding: "gzip",
	})
	if err != nil {
		t.Fatalf("handle error: %v", err)
	}
	readBody(t, resp)

	info, err := os.Stat(sidecar)
	if err != nil {
		t.Fatalf("stat sidecar: %v", err)
	}
	if info.ModTime().Equal(stale) {
		t.Fatalf("compressed sidecar was not regenerated, mod time unchanged")
	}
	if info.Size() == len("not actually gzip") {
		t.Fatalf("compressed sidecar looks unchanged")
	}
}

func TestRunETagRegeneratesStaleSidecar(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "plain.txt", []byte("hello world"))

	sidecar := filepath.Join(root, "plain.txt.etag")
	if err := os.WriteFile(sidecar, []byte("deadbeef-deadbeef-deadbeef\n"), 0o644); err != nil {
		t.Fatalf("write stale sidecar: %v", err)
	}
	stale := time.Now().Add(-1 * time.Hour)
	if err := os.Chtimes(sidecar, stale, stale); err != nil {
		t.Fatalf("age sidecar: %v", err)
	}

	core := newTestCore(t, root, func(cfg *Config) {
		cfg.Defaults = DefaultDefaults()
	})
	resp, err := core.Handle(context.Background(), Request{Method: "GET", Path: "/plain.txt"})
	if err != nil {
		t.Fatalf("handle error: %v", err)
	}
	readBody(t, resp)

	etag, ok := headerValue(resp, "ETag")
	if !ok {
		t.Fatalf("missing ETag header")
	}
	if etag == "deadbeef-deadbeef-deadbeef" {
		t.Fatalf("expected a freshly computed ETag, got the stale cached value")
	}

	info, err := os.Stat(sidecar)
	if err != nil {
		t.Fatalf("stat sidecar: %v", err)
	}
	if info.ModTime().Equal(stale) {
		t.Fatalf("etag sidecar was not regenerated, mod time unchanged")
	}
}
