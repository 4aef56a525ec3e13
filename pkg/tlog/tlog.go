// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlog provides a ulog.Logger for tests.
package tlog

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/u-root/u-root/pkg/ulog"
)

// Testing forwards log lines to a test and keeps them for inspection.
type Testing struct {
	TB testing.TB

	mu    sync.Mutex
	lines []string
}

var _ = ulog.Logger(&Testing{})

func New(tb testing.TB) *Testing {
	return &Testing{TB: tb}
}

func (t *Testing) add(s string) {
	t.TB.Helper()
	t.mu.Lock()
	t.lines = append(t.lines, s)
	t.mu.Unlock()
	t.TB.Log(s)
}

//Print prints a input string
func (t *Testing) Print(v ...interface{}) {
	t.add(fmt.Sprint(v...))
}

//Printf prints a formated string
func (t *Testing) Printf(format string, v ...interface{}) {
	t.add(fmt.Sprintf(format, v...))
}

// Lines returns every line logged so far.
func (t *Testing) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// Contains reports whether any logged line contains substr.
func (t *Testing) Contains(substr string) bool {
	for _, l := range t.Lines() {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
