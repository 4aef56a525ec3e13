// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"context"
	"errors"
	"fmt"
)

// ErrScan is returned when the network listing could not be produced.
var ErrScan = errors.New("wifi scan failed")

// Network is one visible wireless network. Auth and Encryption hold the
// values reported by the OS utility and are empty when the scan did not
// report them.
type Network struct {
	SSID       string
	Auth       string
	Encryption string
}

func (n Network) String() string {
	return fmt.Sprintf("%s (%s, %s)", n.SSID, n.Auth, n.Encryption)
}

// Label is the string this network displays in the menu page.
func (n Network) Label() string {
	return n.String()
}

// WiFi is a wireless backend driven through external utilities.
type WiFi interface {
	// Scan lists the visible networks in the order the utility reports them.
	Scan(ctx context.Context) ([]Network, error)
	// Profile renders the connection profile for n using password.
	Profile(n Network, password string) ([]byte, error)
	// AddProfile installs the profile stored at path.
	AddProfile(ctx context.Context, n Network, path string) error
	// Connect asks the OS to join n.
	Connect(ctx context.Context, n Network) error
	// Connected reports whether the interface is associated with ssid.
	Connected(ctx context.Context, ssid string) (bool, error)
	// DeleteProfile removes the profile installed for n.
	DeleteProfile(ctx context.Context, n Network) error
}
