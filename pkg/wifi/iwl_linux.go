// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/dhclient"
	"github.com/u-root/wlanaudit/pkg/profile"
	"github.com/vishvananda/netlink"
)

// DefaultCtrlDir is where the supplicants started by IWLWorker put their
// control sockets. It is kept apart from the system's
// /var/run/wpa_supplicant so that wpa_cli never queries or terminates a
// daemon this tool did not start.
const DefaultCtrlDir = "/run/wlanaudit"

// IWLWorker implements the WiFi interface using the Intel Wireless LAN
// commands and wpa_supplicant.
type IWLWorker struct {
	Interface string
	// CtrlDir is the control directory of our own wpa_supplicant. Empty
	// means DefaultCtrlDir.
	CtrlDir string
	Runner  Runner
	Log     ulog.Logger
}

var _ = WiFi(&IWLWorker{})

// NewIWLWorker brings interface i up and returns a worker bound to it.
func NewIWLWorker(i string, r Runner, l ulog.Logger) (*IWLWorker, error) {
	if r == nil {
		r = ExecRunner{}
	}
	if l == nil {
		l = ulog.Null
	}
	link, err := netlink.LinkByName(i)
	if err != nil {
		return nil, fmt.Errorf("interface %q: %v", i, err)
	}
	if err := netlink.LinkSetUp(link); err != nil {
		return nil, fmt.Errorf("interface %q up: %v", i, err)
	}
	if err := os.MkdirAll(DefaultCtrlDir, 0o700); err != nil {
		return nil, err
	}
	return &IWLWorker{Interface: i, CtrlDir: DefaultCtrlDir, Runner: r, Log: l}, nil
}

func (w *IWLWorker) ctrlDir() string {
	if w.CtrlDir == "" {
		return DefaultCtrlDir
	}
	return w.CtrlDir
}

// cli runs wpa_cli against our own supplicant only.
func (w *IWLWorker) cli(ctx context.Context, cmd string) ([]byte, error) {
	return w.run(ctx, "wpa_cli", "-p", w.ctrlDir(), "-i", w.Interface, cmd)
}

func (w *IWLWorker) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	w.Log.Printf("%s %s", name, strings.Join(args, " "))
	if err := w.Runner.Run(ctx, &stdout, &stderr, name, args...); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("%s: %v: %s", name, err, msg)
		}
		return stdout.Bytes(), fmt.Errorf("%s: %v", name, err)
	}
	return stdout.Bytes(), nil
}

func (w *IWLWorker) Scan(ctx context.Context) ([]Network, error) {
	o, err := w.run(ctx, "iwlist", w.Interface, "scanning")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}
	return ParseIwlist(o), nil
}

func (w *IWLWorker) Profile(n Network, password string) ([]byte, error) {
	block, err := profile.Supplicant(n.SSID, n.Auth, n.Encryption, password)
	if err != nil {
		return nil, err
	}
	return []byte("ctrl_interface=" + w.ctrlDir() + "\n" + block), nil
}

// ProfilePattern is the temp file pattern supplicant configs are written to.
func (w *IWLWorker) ProfilePattern() string {
	return "wifi-*.conf"
}

// AddProfile starts a wpa_supplicant daemon on the interface with the
// config at path. A daemon left on our control directory by an earlier
// run is stopped first, so the state queried afterwards is always this
// profile's.
func (w *IWLWorker) AddProfile(ctx context.Context, n Network, path string) error {
	if _, err := w.cli(ctx, "terminate"); err != nil {
		w.Log.Printf("no supplicant to stop: %v", err)
	}
	_, err := w.run(ctx, "wpa_supplicant", "-B", "-i"+w.Interface, "-c"+path)
	return err
}

func (w *IWLWorker) Connect(ctx context.Context, n Network) error {
	_, err := w.cli(ctx, "reconnect")
	return err
}

func (w *IWLWorker) Connected(ctx context.Context, ssid string) (bool, error) {
	o, err := w.cli(ctx, "status")
	if err != nil {
		return false, err
	}
	cur, state := ParseSupplicantStatus(o)
	w.Log.Printf("wpa_state %q on %q", state, cur)
	return cur != "" && cur == ssid && state == "COMPLETED", nil
}

// DeleteProfile stops the wpa_supplicant daemon started by AddProfile.
func (w *IWLWorker) DeleteProfile(ctx context.Context, n Network) error {
	_, err := w.cli(ctx, "terminate")
	return err
}

// Lease requests an address for the interface once it is associated.
func (w *IWLWorker) Lease(ctx context.Context, timeout time.Duration, retry int) error {
	return dhclient.Lease(ctx, w.Interface, timeout, retry, w.Log)
}

// WirelessInterfaces lists the links that have a wireless extension.
func WirelessInterfaces() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, l := range links {
		name := l.Attrs().Name
		if _, err := os.Stat(filepath.Join("/sys/class/net", name, "wireless")); err == nil {
			names = append(names, name)
		}
	}
	return names, nil
}
