// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/profile"
)

const netsh = "netsh"

// NetshWorker implements the WiFi interface using the Windows `netsh wlan`
// commands.
type NetshWorker struct {
	// Interface restricts add, connect and delete to one adapter. Empty
	// means let netsh pick.
	Interface string
	Runner    Runner
	Log       ulog.Logger
}

var _ = WiFi(&NetshWorker{})

func NewNetshWorker(iface string, r Runner, l ulog.Logger) *NetshWorker {
	if r == nil {
		r = ExecRunner{}
	}
	if l == nil {
		l = ulog.Null
	}
	return &NetshWorker{Interface: iface, Runner: r, Log: l}
}

func (w *NetshWorker) run(ctx context.Context, args ...string) (*bytes.Buffer, error) {
	var stdout, stderr bytes.Buffer
	w.Log.Printf("%s %s", netsh, strings.Join(args, " "))
	if err := w.Runner.Run(ctx, &stdout, &stderr, netsh, args...); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return &stdout, fmt.Errorf("netsh %s: %v: %s", args[1], err, msg)
		}
		return &stdout, fmt.Errorf("netsh %s: %v", args[1], err)
	}
	return &stdout, nil
}

func (w *NetshWorker) withInterface(args ...string) []string {
	if w.Interface != "" {
		args = append(args, "interface="+w.Interface)
	}
	return args
}

func (w *NetshWorker) Scan(ctx context.Context) ([]Network, error) {
	out, err := w.run(ctx, "wlan", "show", "networks", "mode=bssid")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}
	networks, err := ParseNetworks(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}
	return networks, nil
}

func (w *NetshWorker) Profile(n Network, password string) ([]byte, error) {
	return []byte(profile.WLAN(n.SSID, n.Auth, n.Encryption, password)), nil
}

// ProfilePattern is the temp file pattern netsh profiles are written to.
func (w *NetshWorker) ProfilePattern() string {
	return "wifi-profile-*.xml"
}

func (w *NetshWorker) AddProfile(ctx context.Context, n Network, path string) error {
	_, err := w.run(ctx, w.withInterface("wlan", "add", "profile", "filename="+path, "user=current")...)
	return err
}

func (w *NetshWorker) Connect(ctx context.Context, n Network) error {
	_, err := w.run(ctx, w.withInterface("wlan", "connect", "name="+n.SSID, "ssid="+n.SSID)...)
	return err
}

func (w *NetshWorker) Connected(ctx context.Context, ssid string) (bool, error) {
	out, err := w.run(ctx, "wlan", "show", "interfaces")
	if err != nil {
		return false, err
	}
	cur, state, err := ParseInterfaces(out)
	if err != nil {
		return false, err
	}
	w.Log.Printf("interface state %q on %q", state, cur)
	return IsConnected(cur, state, ssid), nil
}

func (w *NetshWorker) DeleteProfile(ctx context.Context, n Network) error {
	_, err := w.run(ctx, w.withInterface("wlan", "delete", "profile", "name="+n.SSID)...)
	return err
}
