package portalgun

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"Alive":      "alive",
		"  DEAD  ":   "dead",
		"unknown":    "unknown",
		"Captured\n": "captured",
	}
	for in, want := range cases {
		got := NormalizeStatus(in)
		if got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
		if !IsCharacterStatus(got) {
			t.Fatalf("expected %q to be a valid status", got)
		}
	}
	if IsCharacterStatus("zombie") {
		t.Fatalf("zombie should not be a valid status")
	}
}

func TestDimensions(t *testing.T) {
	if !IsPrimeDimension(RickPrimeDimension) {
		t.Fatalf("expected sentinel to be the prime dimension")
	}
	if IsRegularDimension(RickPrimeDimension) {
		t.Fatalf("sentinel must not be a regular dimension")
	}
	if !IsRegularDimension("C-137") || !IsRegularDimension("C-131") {
		t.Fatalf("expected C-137 and C-131 to be regular")
	}
}

func TestIsHTTPURL(t *testing.T) {
	if !IsHTTPURL("https://rickandmortyapi.com/api/character/avatar/1.jpeg") {
		t.Fatalf("expected https url to pass")
	}
	if !IsHTTPURL("http://example.com/a.png") {
		t.Fatalf("expected http url to pass")
	}
	if IsHTTPURL("ftp://example.com/a.png") || IsHTTPURL("example.com") {
		t.Fatalf("expected non-http urls to fail")
	}
}
