package fileserver

import "testing"

type fixedMediaTyper map[string]string

func (f fixedMediaTyper) TypeByExtension(ext string) string { return f[ext] }

func TestSelectPolicyDefaults(t *testing.T) {
	cfg := &Config{MediaTypes: fixedMediaTyper{".css": "text/css"}}
	ct, ext, validFor, cc, shouldETag := selectPolicy(cfg, "/style.css")
	if ct != "text/css" {
		t.Fatalf("content type = %q", ct)
	}
	if ext != ".css" {
		t.Fatalf("extension = %q", ext)
	}
	if validFor != 86400 {
		t.Fatalf("validFor = %d, want 86400", validFor)
	}
	if shouldETag {
		t.Fatalf("shouldETag = true, want false (Defaults.ETag is zero-valued here)")
	}
	if cc[0] != "max-age=86400" || cc[1] != "public" {
		t.Fatalf("cache control = %v", cc)
	}
}

func TestSelectPolicyTypeOverrideWins(t *testing.T) {
	validFor := 10
	cfg := &Config{
		MediaTypes: fixedMediaTyper{".less": "text/less"},
		Types: map[string]TypeOverride{
			".less": {ContentType: "text/stylesheet-less", ValidFor: &validFor, CacheControl: []string{"private"}},
		},
	}
	ct, _, vf, cc, _ := selectPolicy(cfg, "/x.less")
	if ct != "text/stylesheet-less" {
		t.Fatalf("content type = %q", ct)
	}
	if vf != 10 {
		t.Fatalf("validFor = %d, want 10", vf)
	}
	if cc[0] != "max-age=10" || cc[1] != "private" {
		t.Fatalf("cache control = %v", cc)
	}
}

func TestSelectPolicyNoStoreSuppressesMaxAgeAndETag(t *testing.T) {
	validFor := 60
	cfg := &Config{
		MediaTypes: fixedMediaTyper{},
		Defaults:   Defaults{ValidFor: &validFor, CacheControl: []string{"no-store"}, ETag: true},
	}
	_, _, _, cc, shouldETag := selectPolicy(cfg, "/x.bin")
	if shouldETag {
		t.Fatalf("shouldETag = true, want false under no-store")
	}
	if len(cc) != 1 || cc[0] != "no-store" {
		t.Fatalf("cache control = %v, want just [no-store]", cc)
	}
}

func TestSelectPolicyUnknownExtensionFallsBackToTextPlain(t *testing.T) {
	cfg := &Config{MediaTypes: fixedMediaTyper{}}
	ct, _, _, _, _ := selectPolicy(cfg, "/noextension")
	if ct != "text/plain" {
		t.Fatalf("content type = %q, want text/plain", ct)
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"/a/b/file.tar.gz": ".gz",
		"/a/b/file":         "",
		"/.hidden":          "",
		"/a/b.c/d.ext":      ".ext",
	}
	for path, want := range cases {
		if got := extensionOf(path); got != want {
			t.Fatalf("extensionOf(%q) = %q, want %q", path, got, want)
		}
	}
}
