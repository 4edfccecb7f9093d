package server

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/ido50/mccs/internal/fileserver"
)

func TestRouterServesFileFromNonVHostRoot(t *testing.T) {
	app := newTestApp(t, 5000, false)

	req := httptest.NewRequest("GET", "http://example.local/hello.txt", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "hello world" {
		t.Fatalf("unexpected body: %s", body)
	}
	if reqID := resp.Header.Get("X-Request-ID"); reqID == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestRouterVHostModeResolvesHostDirectory(t *testing.T) {
	app := newTestApp(t, 5000, true)

	req := httptest.NewRequest("GET", "http://a.local/hello.txt", nil)
	req.Host = "a.local"
	req.Header.Set("Host", "a.local")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRouterVHostModeUnmappedHostIs404(t *testing.T) {
	app := newTestApp(t, 5000, true)

	req := httptest.NewRequest("GET", "http://nowhere.local/hello.txt", nil)
	req.Host = "nowhere.local"
	req.Header.Set("Host", "nowhere.local")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRouterDiagnosticsCapabilities(t *testing.T) {
	app := newTestApp(t, 5000, false)

	req := httptest.NewRequest("GET", "http://example.local/-/capabilities", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func newTestApp(t *testing.T, port int, vhost bool) *fiber.App {
	t.Helper()

	root := t.TempDir()
	if vhost {
		for _, host := range []string{"a.local", "b.local"} {
			dir := filepath.Join(root, host)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello world"), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
		}
	} else {
		if err := os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello world"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	template := fileserver.Config{
		Encoding:   "UTF-8",
		Defaults:   fileserver.DefaultDefaults(),
		IndexFiles: []string{"index.html"},
		MediaTypes: fileserver.StdlibMediaTypes{},
	}

	registry, err := NewRegistry(root, vhost, template, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app, err := NewApp(AppOptions{
		Logger:     logger,
		Registry:   registry,
		ListenPort: port,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	return app
}
