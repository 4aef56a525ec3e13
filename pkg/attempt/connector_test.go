// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attempt

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/u-root/wlanaudit/pkg/tlog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAttempt(t *testing.T) {
	for _, tt := range []struct {
		name      string
		password  string
		want      bool
		wantCalls []string
	}{
		{
			name:      "wrong_password_deletes_profile",
			password:  "wrongpass",
			wantCalls: []string{"add HomeNet", "connect HomeNet", "connected HomeNet", "delete HomeNet"},
		},
		{
			name:      "right_password_keeps_profile",
			password:  "correctpass",
			want:      true,
			wantCalls: []string{"add HomeNet", "connect HomeNet", "connected HomeNet"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := wifi.NewStubWorker("correctpass", home)
			c := New(w, WithSettle(0), WithTempDir(dir), WithLogger(tlog.New(t)))

			got, err := c.Attempt(context.Background(), home, tt.password)
			if err != nil {
				t.Fatalf("Attempt() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Attempt() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(w.Calls, tt.wantCalls) {
				t.Errorf("calls got: %q, want: %q", w.Calls, tt.wantCalls)
			}
			if !reflect.DeepEqual(w.Profiles, []string{tt.password}) {
				t.Errorf("profiles got: %q", w.Profiles)
			}
			if left := tempFiles(t, dir); len(left) != 0 {
				t.Errorf("profile files left behind: %q", left)
			}
		})
	}
}

func TestAttemptLoop(t *testing.T) {
	dir := t.TempDir()
	w := wifi.NewStubWorker("correctpass", home)
	c := New(w, WithSettle(0), WithTempDir(dir))

	ok, err := Run(context.Background(), c, home, strings.NewReader("\nwrongpass\ncorrectpass\nunreached\n"))
	if err != nil || !ok {
		t.Fatalf("Run() = %v, %v; want true, nil", ok, err)
	}
	if want := []string{"wrongpass", "correctpass"}; !reflect.DeepEqual(w.Profiles, want) {
		t.Errorf("profiles got: %q, want: %q", w.Profiles, want)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("profile files left behind: %q", left)
	}
}

// lateWorker reports the connection only after a few state queries.
type lateWorker struct {
	*wifi.StubWorker
	after   int
	queries int
}

func (w *lateWorker) Connected(ctx context.Context, ssid string) (bool, error) {
	w.queries++
	if w.queries <= w.after {
		return false, nil
	}
	return w.StubWorker.Connected(ctx, ssid)
}

func (w *lateWorker) ProfilePattern() string {
	return "late-*.xml"
}

func TestAttemptPoll(t *testing.T) {
	for _, tt := range []struct {
		name        string
		timeout     time.Duration
		want        bool
		wantQueries int
	}{
		{name: "single_sample", timeout: 0, want: false, wantQueries: 1},
		{name: "polls_until_connected", timeout: time.Second, want: true, wantQueries: 3},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w := &lateWorker{StubWorker: wifi.NewStubWorker("correctpass", home), after: 2}
			c := New(w, WithSettle(0), WithPoll(time.Millisecond, tt.timeout), WithTempDir(t.TempDir()))

			got, err := c.Attempt(context.Background(), home, "correctpass")
			if err != nil {
				t.Fatalf("Attempt() error: %v", err)
			}
			if got != tt.want || w.queries != tt.wantQueries {
				t.Errorf("Attempt() = %v after %d queries, want %v after %d", got, w.queries, tt.want, tt.wantQueries)
			}
		})
	}
}

// renderFail cannot produce a profile.
type renderFail struct {
	*wifi.StubWorker
}

func (renderFail) Profile(n wifi.Network, password string) ([]byte, error) {
	return nil, errors.New("passphrase must be 8..63 characters")
}

func TestAttemptRenderError(t *testing.T) {
	w := renderFail{wifi.NewStubWorker("x")}
	c := New(w, WithSettle(0), WithTempDir(t.TempDir()))

	ok, err := c.Attempt(context.Background(), home, "short")
	if ok || !errors.Is(err, ErrAttempt) {
		t.Errorf("Attempt() = %v, %v; want false, ErrAttempt", ok, err)
	}
	if len(w.Calls) != 0 {
		t.Errorf("backend called after render failure: %q", w.Calls)
	}
}

func TestAttemptCanceledDuringSettle(t *testing.T) {
	dir := t.TempDir()
	w := wifi.NewStubWorker("correctpass", home)
	c := New(w, WithSettle(time.Hour), WithTempDir(dir))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	ok, err := c.Attempt(ctx, home, "wrongpass")
	if ok || !errors.Is(err, context.Canceled) {
		t.Errorf("Attempt() = %v, %v; want false, context.Canceled", ok, err)
	}
	if last := w.Calls[len(w.Calls)-1]; last != "delete HomeNet" {
		t.Errorf("last call = %q, want the profile deleted", last)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("profile files left behind: %q", left)
	}
}

func TestPattern(t *testing.T) {
	if got := New(wifi.NewStubWorker("")).pattern(); got != defaultPattern {
		t.Errorf("pattern() = %q, want %q", got, defaultPattern)
	}
	w := &lateWorker{StubWorker: wifi.NewStubWorker("")}
	if got := New(w).pattern(); got != "late-*.xml" {
		t.Errorf("pattern() = %q", got)
	}
}
