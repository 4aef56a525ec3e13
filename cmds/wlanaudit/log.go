package main

import (
	"sync"

	"github.com/u-root/u-root/pkg/ulog"
)

// switchLog forwards to a logger that can be replaced while commands run,
// e.g. silenced while the terminal UI owns the screen.
type switchLog struct {
	mu sync.Mutex
	l  ulog.Logger
}

var _ = ulog.Logger(&switchLog{})

func newSwitchLog(l ulog.Logger) *switchLog {
	return &switchLog{l: l}
}

// set replaces the target and returns the previous one.
func (s *switchLog) set(l ulog.Logger) ulog.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.l
	s.l = l
	return prev
}

func (s *switchLog) target() ulog.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.l
}

func (s *switchLog) Printf(format string, v ...interface{}) {
	s.target().Printf(format, v...)
}

func (s *switchLog) Print(v ...interface{}) {
	s.target().Print(v...)
}
