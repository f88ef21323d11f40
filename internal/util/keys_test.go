package util

import "testing"

func TestNamespaced(t *testing.T) {
	if got := Namespaced("app:", "u:1"); got != "app:u:1" {
		t.Fatalf("got %q", got)
	}
	if got := Namespaced("", "u:1"); got != "u:1" {
		t.Fatalf("empty prefix: got %q", got)
	}
}

func TestRedactStable(t *testing.T) {
	a, b := Redact("app:u:1"), Redact("app:u:1")
	if a != b || len(a) != 16 {
		t.Fatalf("redact not stable or wrong length: %q %q", a, b)
	}
	if Redact("app:u:2") == a {
		t.Fatalf("distinct keys redacted to the same value")
	}
}
