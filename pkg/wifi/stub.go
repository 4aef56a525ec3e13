// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"context"
	"os"
)

var _ = WiFi(&StubWorker{})

// StubWorker is an in-memory backend. Its profiles are the bare password,
// so AddProfile learns the candidate by reading the file it is given, and
// Connect joins only when that candidate equals Password.
type StubWorker struct {
	Networks []Network
	Password string
	ScanErr  error

	// Calls records each operation as "<op> <ssid>".
	Calls []string
	// Profiles records the content of every installed profile.
	Profiles []string

	pending string
	joined  string
}

func NewStubWorker(password string, networks ...Network) *StubWorker {
	return &StubWorker{Password: password, Networks: networks}
}

func (w *StubWorker) Scan(ctx context.Context) ([]Network, error) {
	w.Calls = append(w.Calls, "scan")
	return w.Networks, w.ScanErr
}

func (w *StubWorker) Profile(n Network, password string) ([]byte, error) {
	return []byte(password), nil
}

func (w *StubWorker) AddProfile(ctx context.Context, n Network, path string) error {
	w.Calls = append(w.Calls, "add "+n.SSID)
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.pending = string(b)
	w.Profiles = append(w.Profiles, w.pending)
	return nil
}

func (w *StubWorker) Connect(ctx context.Context, n Network) error {
	w.Calls = append(w.Calls, "connect "+n.SSID)
	if w.pending != "" && w.pending == w.Password {
		w.joined = n.SSID
	}
	return nil
}

func (w *StubWorker) Connected(ctx context.Context, ssid string) (bool, error) {
	w.Calls = append(w.Calls, "connected "+ssid)
	return w.joined != "" && w.joined == ssid, nil
}

func (w *StubWorker) DeleteProfile(ctx context.Context, n Network) error {
	w.Calls = append(w.Calls, "delete "+n.SSID)
	w.pending = ""
	return nil
}
