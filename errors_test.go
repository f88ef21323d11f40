package cachestore

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	ce := &ConnectionError{Op: "connect", Addr: "localhost:11211", Err: errors.New("refused")}
	if got := ce.Error(); got != "cachestore: connect localhost:11211: refused" {
		t.Fatalf("ConnectionError=%q", got)
	}
	if got := (&ConnectionError{Op: "read"}).Error(); got != "cachestore: read: connection error" {
		t.Fatalf("bare ConnectionError=%q", got)
	}

	ud := &UnsupportedDependencyError{Key: "k", Items: []string{"a", "b"}}
	if !strings.Contains(ud.Error(), `"k"`) || !strings.Contains(ud.Error(), "2 items") {
		t.Fatalf("UnsupportedDependencyError=%q", ud.Error())
	}

	jm := &JournalMissingError{Key: "k"}
	if !strings.Contains(jm.Error(), "journal") {
		t.Fatalf("JournalMissingError=%q", jm.Error())
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{&ConnectionError{Op: "read"}, ErrConnection},
		{&UnsupportedDependencyError{}, ErrUnsupportedDependency},
		{&JournalMissingError{}, ErrJournalMissing},
	}
	sentinels := []error{ErrConnection, ErrUnsupportedDependency, ErrJournalMissing}
	for _, tc := range cases {
		for _, s := range sentinels {
			if got := errors.Is(tc.err, s); got != (s == tc.want) {
				t.Fatalf("errors.Is(%T, %v)=%v", tc.err, s, got)
			}
		}
	}
}
