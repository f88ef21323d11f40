package cachestore

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. The concrete errors below match them.
var (
	ErrConnection            = errors.New("cachestore: connection error")
	ErrUnsupportedDependency = errors.New("cachestore: unsupported dependency")
	ErrJournalMissing        = errors.New("cachestore: journal missing")
)

// ConnectionError reports a transport that could not be reached, either while
// connecting or during an operation. It is not retried internally.
type ConnectionError struct {
	Op   string // connect, read, write, renew, remove, flush, clean
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	var b strings.Builder
	b.WriteString("cachestore: ")
	b.WriteString(e.Op)
	if e.Addr != "" {
		b.WriteString(" ")
		b.WriteString(e.Addr)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("connection error")
	}
	return b.String()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool {
	if target == ErrConnection {
		return true
	}
	_, ok := target.(*ConnectionError)
	return ok
}

// UnsupportedDependencyError is returned by Write when Dependencies.Items is
// set. Nothing is written and no I/O happens.
type UnsupportedDependencyError struct {
	Key   string
	Items []string
}

func (e *UnsupportedDependencyError) Error() string {
	return fmt.Sprintf("cachestore: write %q: dependency on other cache items is not supported (%d items)",
		e.Key, len(e.Items))
}

func (e *UnsupportedDependencyError) Is(target error) bool {
	if target == ErrUnsupportedDependency {
		return true
	}
	_, ok := target.(*UnsupportedDependencyError)
	return ok
}

// JournalMissingError is returned by Write when tags or priority are given but
// no Journal is configured. Nothing is written.
type JournalMissingError struct {
	Key string
}

func (e *JournalMissingError) Error() string {
	return fmt.Sprintf("cachestore: write %q: tags/priority require a journal", e.Key)
}

func (e *JournalMissingError) Is(target error) bool {
	if target == ErrJournalMissing {
		return true
	}
	_, ok := target.(*JournalMissingError)
	return ok
}
