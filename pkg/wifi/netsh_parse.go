// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var (
	// RegEx for parsing `netsh wlan show networks mode=bssid`, applied to
	// trimmed lines.
	netSSIDRE = regexp.MustCompile(`^SSID \d+ :\s*(.*)$`)
	netAuthRE = regexp.MustCompile(`^Authentication\s+: (.+)$`)
	netEncRE  = regexp.MustCompile(`^Encryption\s+: (.+)$`)

	// RegEx for parsing `netsh wlan show interfaces`.
	ifSSIDRE  = regexp.MustCompile(`^\s*SSID\s+: (.+)$`)
	ifStateRE = regexp.MustCompile(`^\s*State\s+: (.+)$`)
)

// scanState accumulates one network block at a time.
type scanState struct {
	open bool
	cur  Network
	out  []Network
}

// flush emits the block in progress. Blocks with an empty SSID (hidden
// networks) are dropped on purpose: they have no name to connect by.
func (s *scanState) flush() {
	if s.open && s.cur.SSID != "" {
		s.out = append(s.out, s.cur)
	}
	s.open, s.cur = false, Network{}
}

func (s *scanState) feed(line string) {
	line = strings.TrimSpace(line)
	if m := netSSIDRE.FindStringSubmatch(line); m != nil {
		s.flush()
		s.open, s.cur.SSID = true, strings.TrimSpace(m[1])
		return
	}
	if !s.open {
		return
	}
	if m := netAuthRE.FindStringSubmatch(line); m != nil {
		s.cur.Auth = strings.TrimSpace(m[1])
		return
	}
	if m := netEncRE.FindStringSubmatch(line); m != nil {
		s.cur.Encryption = strings.TrimSpace(m[1])
	}
}

// ParseNetworks parses the output of `netsh wlan show networks`. A new
// "SSID <n> : <name>" line terminates the previous block; the last
// Authentication and Encryption lines seen in a block win.
func ParseNetworks(r io.Reader) ([]Network, error) {
	var s scanState
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	s.flush()
	return s.out, nil
}

// ParseInterfaces returns the SSID and State reported by
// `netsh wlan show interfaces`. Missing fields are returned empty.
func ParseInterfaces(r io.Reader) (ssid, state string, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if m := ifSSIDRE.FindStringSubmatch(line); m != nil {
			ssid = strings.TrimSpace(m[1])
			continue
		}
		if m := ifStateRE.FindStringSubmatch(line); m != nil {
			state = strings.TrimSpace(m[1])
		}
	}
	return ssid, state, sc.Err()
}

// IsConnected reports whether state is "connected" (any case) and ssid is
// exactly target.
func IsConnected(ssid, state, target string) bool {
	return ssid != "" && ssid == target && strings.EqualFold(state, "connected")
}
