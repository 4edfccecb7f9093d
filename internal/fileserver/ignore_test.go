package fileserver

import "testing"

func TestGlobIgnoreMatchesPatternAndBaseName(t *testing.T) {
	ignore := NewGlobIgnore("*.bak\n# comment\n\n/secrets/*\n")
	cases := map[string]bool{
		"/notes.bak":        true,
		"/deep/nested.bak":  true,
		"/secrets/key.pem":  true,
		"/public/index.html": false,
	}
	for path, want := range cases {
		if got := ignore.Match(path); got != want {
			t.Fatalf("Match(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestGlobIgnoreEmptyPatternList(t *testing.T) {
	ignore := NewGlobIgnore("")
	if ignore.Match("/anything") {
		t.Fatalf("expected no match with empty pattern list")
	}
}
