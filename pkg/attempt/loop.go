// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attempt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

const maxLine = 1 << 20

// Attempter tries a single password against a network.
type Attempter interface {
	Attempt(ctx context.Context, n wifi.Network, password string) (bool, error)
}

var _ = Attempter(&Connector{})

// Progress describes one finished candidate.
type Progress struct {
	// Attempt counts the candidates tried so far, starting at 1.
	Attempt int
	// Line is the wordlist line the candidate came from.
	Line int
	// Skipped counts the blank lines passed over so far.
	Skipped   int
	Password  string
	Connected bool
	Err       error
}

type loop struct {
	trying   func(Progress)
	progress func(Progress)
	log      ulog.Logger
}

// LoopOption configures Run.
type LoopOption func(*loop)

// WithTrying calls f before every candidate is attempted.
func WithTrying(f func(Progress)) LoopOption {
	return func(l *loop) { l.trying = f }
}

// WithProgress calls f after every candidate.
func WithProgress(f func(Progress)) LoopOption {
	return func(l *loop) { l.progress = f }
}

func WithLoopLogger(lg ulog.Logger) LoopOption {
	return func(l *loop) { l.log = lg }
}

// Run reads wordlist one line at a time and tries each trimmed, non-empty
// line against n until one connects. It returns false with a nil error when
// the list runs out. Attempt failures only fail that candidate. A read error
// wraps ErrWordlist; cancellation returns ctx.Err() before the next
// candidate.
func Run(ctx context.Context, a Attempter, n wifi.Network, wordlist io.Reader, opts ...LoopOption) (bool, error) {
	l := loop{trying: func(Progress) {}, progress: func(Progress) {}, log: ulog.Null}
	for _, o := range opts {
		o(&l)
	}

	sc := bufio.NewScanner(wordlist)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var p Progress
	for sc.Scan() {
		p.Line++
		password := strings.TrimSpace(sc.Text())
		if password == "" {
			p.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}

		p.Attempt++
		p.Password = password
		p.Connected, p.Err = false, nil
		l.trying(p)
		p.Connected, p.Err = a.Attempt(ctx, n, password)
		if p.Err != nil {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			l.log.Printf("candidate on line %d: %v", p.Line, p.Err)
		}
		l.progress(p)
		if p.Connected {
			return true, nil
		}
	}
	if err := sc.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrWordlist, err)
	}
	return false, nil
}
