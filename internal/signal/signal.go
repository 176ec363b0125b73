// Package signal carries the active page section from whoever reports it
// to the frame loop that reads it.
package signal

import (
	"strings"
	"sync/atomic"
)

// Section is a last-write-wins string shared between goroutines. Writers
// may call Set at any time; the frame loop calls Load once per frame.
type Section struct {
	value   atomic.Pointer[string]
	version atomic.Uint64
}

func NewSection(initial string) *Section {
	s := &Section{}
	s.Set(initial)
	return s
}

// Set stores name, trimmed of surrounding whitespace.
func (s *Section) Set(name string) {
	name = strings.TrimSpace(name)
	s.value.Store(&name)
	s.version.Add(1)
}

func (s *Section) Load() string {
	if p := s.value.Load(); p != nil {
		return *p
	}
	return ""
}

// Version increases on every Set.
func (s *Section) Version() uint64 {
	return s.version.Load()
}
