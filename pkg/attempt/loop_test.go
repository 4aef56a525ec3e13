// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attempt

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/u-root/wlanaudit/pkg/tlog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

// stubAttempter succeeds only for one password and records every call.
type stubAttempter struct {
	correct string
	fail    map[string]error
	tried   []string
}

func (s *stubAttempter) Attempt(ctx context.Context, n wifi.Network, password string) (bool, error) {
	s.tried = append(s.tried, password)
	if err := s.fail[password]; err != nil {
		return false, err
	}
	return password == s.correct, nil
}

var home = wifi.Network{SSID: "HomeNet", Auth: "WPA2-Personal", Encryption: "CCMP"}

func TestRun(t *testing.T) {
	for _, tt := range []struct {
		name      string
		wordlist  string
		fail      map[string]error
		want      bool
		wantTried []string
	}{
		{
			name:      "stops_at_first_success",
			wordlist:  "\nwrongpass\ncorrectpass\nunreached\n",
			want:      true,
			wantTried: []string{"wrongpass", "correctpass"},
		},
		{
			name:     "empty_wordlist",
			wordlist: "",
		},
		{
			name:     "only_blank_lines",
			wordlist: "\n   \n\t\n",
		},
		{
			name:      "exhausted",
			wordlist:  "a\nb\nc",
			wantTried: []string{"a", "b", "c"},
		},
		{
			name:      "trims_whitespace",
			wordlist:  "  correctpass \r\n",
			want:      true,
			wantTried: []string{"correctpass"},
		},
		{
			name:      "attempt_error_is_a_failure",
			wordlist:  "broken\ncorrectpass\n",
			fail:      map[string]error{"broken": &AttemptError{Op: "write profile", Err: errors.New("disk full")}},
			want:      true,
			wantTried: []string{"broken", "correctpass"},
		},
		{
			name:      "duplicates_are_tried_again",
			wordlist:  "a\na\n",
			wantTried: []string{"a", "a"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			a := &stubAttempter{correct: "correctpass", fail: tt.fail}
			got, err := Run(context.Background(), a, home, strings.NewReader(tt.wordlist), WithLoopLogger(tlog.New(t)))
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Run() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(a.tried, tt.wantTried) {
				t.Errorf("tried %q, want %q", a.tried, tt.wantTried)
			}
		})
	}
}

func TestRunProgress(t *testing.T) {
	a := &stubAttempter{correct: "correctpass"}
	var got []Progress
	ok, err := Run(context.Background(), a, home, strings.NewReader("\nwrongpass\n\ncorrectpass\n"),
		WithProgress(func(p Progress) { got = append(got, p) }))
	if err != nil || !ok {
		t.Fatalf("Run() = %v, %v", ok, err)
	}
	want := []Progress{
		{Attempt: 1, Line: 2, Skipped: 1, Password: "wrongpass"},
		{Attempt: 2, Line: 4, Skipped: 2, Password: "correctpass", Connected: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("progress got: %+v\nwant: %+v", got, want)
	}
}

func TestRunReadError(t *testing.T) {
	a := &stubAttempter{}
	r := iotest.ErrReader(errors.New("device gone"))
	ok, err := Run(context.Background(), a, home, r)
	if ok || !errors.Is(err, ErrWordlist) {
		t.Errorf("Run() = %v, %v; want false, ErrWordlist", ok, err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := &stubAttempter{correct: "correctpass"}
	ok, err := Run(ctx, a, home, strings.NewReader("correctpass\n"))
	if ok || !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, %v; want false, context.Canceled", ok, err)
	}
	if len(a.tried) != 0 {
		t.Errorf("tried %q after cancel", a.tried)
	}
}

func TestAttemptErrorIs(t *testing.T) {
	err := error(&AttemptError{Op: "create profile", Err: errors.New("no space")})
	if !errors.Is(err, ErrAttempt) {
		t.Errorf("errors.Is(%v, ErrAttempt) = false", err)
	}
	if got := err.Error(); got != "attempt: create profile: no space" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRunTrying(t *testing.T) {
	a := &stubAttempter{correct: "b"}
	var before []string
	ok, err := Run(context.Background(), a, home, strings.NewReader("a\nb\nc\n"),
		WithTrying(func(p Progress) {
			if p.Connected || p.Err != nil {
				t.Errorf("trying hook saw a result: %+v", p)
			}
			before = append(before, p.Password)
		}))
	if err != nil || !ok {
		t.Fatalf("Run() = %v, %v", ok, err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(before, want) {
		t.Errorf("trying got: %q, want: %q", before, want)
	}
}
