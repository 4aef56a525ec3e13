// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Package dhclient leases an IPv4 address for a freshly associated wireless
// interface.
package dhclient

import (
	"context"
	"fmt"
	"time"

	"github.com/u-root/u-root/pkg/dhclient"
	"github.com/u-root/u-root/pkg/ulog"
	"github.com/vishvananda/netlink"
)

// Lease sends DHCPv4 requests on ifName and configures the first lease it
// gets. Each packet waits timeout and is retried retry times.
func Lease(ctx context.Context, ifName string, timeout time.Duration, retry int, l ulog.Logger) error {
	iface, err := netlink.LinkByName(ifName)
	if err != nil {
		return fmt.Errorf("can't find link %q: %v", ifName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout*time.Duration(1<<uint(retry)))
	defer cancel()

	c := dhclient.Config{
		Timeout: timeout,
		Retries: retry,
	}
	r := dhclient.SendRequests(ctx, []netlink.Link{iface}, true, false, c, 30*time.Second)

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("dhcp on %s: %v", ifName, ctx.Err())

		case result, ok := <-r:
			if !ok {
				return fmt.Errorf("dhcp on %s: no lease", ifName)
			}
			if result.Err != nil {
				l.Printf("Could not configure %s: %v", ifName, result.Err)
				continue
			}
			if err := result.Lease.Configure(); err != nil {
				return fmt.Errorf("could not configure %s: %v", ifName, err)
			}
			l.Printf("Configured %s with %s", ifName, result.Lease)
			return nil
		}
	}
}
