// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/u-root/wlanaudit/pkg/tlog"
)

// fakeRunner answers commands from canned output keyed by the full
// command line.
type fakeRunner struct {
	out   map[string]string
	err   map[string]error
	calls []string
}

func (f *fakeRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	io.WriteString(stdout, f.out[cmd])
	if err := f.err[cmd]; err != nil {
		io.WriteString(stderr, "boom")
		return err
	}
	return nil
}

func TestNetshScan(t *testing.T) {
	r := &fakeRunner{out: map[string]string{"netsh wlan show networks mode=bssid": showNetworks}}
	w := NewNetshWorker("", r, tlog.New(t))

	got, err := w.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(got) != 3 || got[1].SSID != "Cafe Guest" {
		t.Errorf("Scan() got: %+v", got)
	}
}

func TestNetshScanError(t *testing.T) {
	r := &fakeRunner{err: map[string]error{"netsh wlan show networks mode=bssid": errors.New("exit status 1")}}
	w := NewNetshWorker("", r, tlog.New(t))

	_, err := w.Scan(context.Background())
	if !errors.Is(err, ErrScan) {
		t.Fatalf("Scan() error = %v, want ErrScan", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Scan() error %q does not carry stderr", err)
	}
}

func TestNetshCommands(t *testing.T) {
	n := Network{SSID: "Home Net", Auth: "WPA2-Personal", Encryption: "CCMP"}
	for _, tt := range []struct {
		name  string
		iface string
		do    func(w *NetshWorker) error
		want  []string
	}{
		{
			name: "add_profile",
			do: func(w *NetshWorker) error {
				return w.AddProfile(context.Background(), n, `C:\Temp\wifi-profile-1.xml`)
			},
			want: []string{`netsh wlan add profile filename=C:\Temp\wifi-profile-1.xml user=current`},
		},
		{
			name:  "add_profile_interface",
			iface: "Wi-Fi 2",
			do: func(w *NetshWorker) error {
				return w.AddProfile(context.Background(), n, `C:\Temp\wifi-profile-1.xml`)
			},
			want: []string{`netsh wlan add profile filename=C:\Temp\wifi-profile-1.xml user=current interface=Wi-Fi 2`},
		},
		{
			name:  "delete_profile_interface",
			iface: "Wi-Fi 2",
			do:    func(w *NetshWorker) error { return w.DeleteProfile(context.Background(), n) },
			want:  []string{"netsh wlan delete profile name=Home Net interface=Wi-Fi 2"},
		},
		{
			name: "connect",
			do:   func(w *NetshWorker) error { return w.Connect(context.Background(), n) },
			want: []string{"netsh wlan connect name=Home Net ssid=Home Net"},
		},
		{
			name:  "connect_interface",
			iface: "Wi-Fi 2",
			do:    func(w *NetshWorker) error { return w.Connect(context.Background(), n) },
			want:  []string{"netsh wlan connect name=Home Net ssid=Home Net interface=Wi-Fi 2"},
		},
		{
			name: "delete_profile",
			do:   func(w *NetshWorker) error { return w.DeleteProfile(context.Background(), n) },
			want: []string{"netsh wlan delete profile name=Home Net"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			w := NewNetshWorker(tt.iface, r, tlog.New(t))
			if err := tt.do(w); err != nil {
				t.Fatalf("error: %v", err)
			}
			if !reflect.DeepEqual(r.calls, tt.want) {
				t.Errorf("calls got: %q, want: %q", r.calls, tt.want)
			}
		})
	}
}

func TestNetshConnected(t *testing.T) {
	r := &fakeRunner{out: map[string]string{"netsh wlan show interfaces": showInterfaces}}
	w := NewNetshWorker("", r, tlog.New(t))

	for ssid, want := range map[string]bool{"HomeNet": true, "Office": false} {
		got, err := w.Connected(context.Background(), ssid)
		if err != nil {
			t.Fatalf("Connected(%q) error: %v", ssid, err)
		}
		if got != want {
			t.Errorf("Connected(%q) = %v, want %v", ssid, got, want)
		}
	}
}

func TestNetshProfile(t *testing.T) {
	w := NewNetshWorker("", &fakeRunner{}, nil)
	b, err := w.Profile(Network{SSID: "HomeNet", Auth: "WPA2-Personal", Encryption: "CCMP"}, "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<keyMaterial>hunter22</keyMaterial>") {
		t.Errorf("Profile() does not carry the password:\n%s", b)
	}
}
