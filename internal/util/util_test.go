package util

import "testing"

func TestContentHash(t *testing.T) {
	a := ContentHashString("Respeitamos seu silêncio.")
	b := ContentHash([]byte("Respeitamos seu silêncio."))
	if a != b {
		t.Errorf("String and byte hashes differ: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Expected a hex sha256, got %q", a)
	}
	if a == ContentHashString("Respeitamos seu silêncio!") {
		t.Error("Different texts should hash differently")
	}
}
