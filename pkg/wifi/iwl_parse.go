// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"bufio"
	"regexp"
	"strings"
)

var (
	// RegEx for parsing iwlist output
	cellRE       = regexp.MustCompile(`(?m)^\s*Cell \d+`)
	essidRE      = regexp.MustCompile(`^\s*ESSID:"(.*)"\s*$`)
	encKeyOptRE  = regexp.MustCompile(`^\s*Encryption key:(on|off)\s*$`)
	wpa2RE       = regexp.MustCompile(`^\s*IE: IEEE 802.11i/WPA2 Version \d+`)
	wpaRE        = regexp.MustCompile(`^\s*IE: WPA Version \d+`)
	otherIERE    = regexp.MustCompile(`^\s*IE: `)
	pairwiseRE   = regexp.MustCompile(`^\s*Pairwise Ciphers \(\d+\) : (.*)$`)
	authSuitesRE = regexp.MustCompile(`^\s*Authentication Suites \(\d+\) : (.*)$`)

	// wpa_cli status
	statusSSIDRE  = regexp.MustCompile(`^ssid=(.*)$`)
	statusStateRE = regexp.MustCompile(`^wpa_state=(.*)$`)
)

// ie collects what one information element advertises.
type ie struct {
	seen     bool
	pairwise string
	suites   string
}

// cell accumulates one iwlist Cell block.
type cell struct {
	essid  string
	encOff bool
	rsn    ie
	wpa    ie
}

func (c *cell) network() Network {
	n := Network{SSID: c.essid}
	switch {
	case c.encOff:
		n.Auth, n.Encryption = "Open", "None"
		return n
	case c.rsn.seen:
		n.Auth = authName(c.rsn.suites, "WPA2")
		n.Encryption = cipherName(c.rsn.pairwise)
	case c.wpa.seen:
		n.Auth = authName(c.wpa.suites, "WPA")
		n.Encryption = cipherName(c.wpa.pairwise)
	default:
		n.Auth, n.Encryption = "WEP", "WEP"
	}
	return n
}

// authName names a suite list the way netsh does. SAE is reported by
// older wireless-tools as "unknown (8)".
func authName(suites, version string) string {
	switch {
	case strings.Contains(suites, "SAE"), strings.Contains(suites, "unknown (8)"):
		return "WPA3-Personal"
	case strings.Contains(suites, "PSK"):
		return version + "-Personal"
	case strings.Contains(suites, "802.1x"):
		return version + "-Enterprise"
	}
	return "Unknown"
}

func cipherName(pairwise string) string {
	switch {
	case strings.Contains(pairwise, "CCMP"):
		return "CCMP"
	case strings.Contains(pairwise, "TKIP"):
		return "TKIP"
	}
	return pairwise
}

func parseCell(block string) cell {
	var c cell
	var cur *ie
	sc := bufio.NewScanner(strings.NewReader(block))
	for sc.Scan() {
		line := sc.Text()
		if m := essidRE.FindStringSubmatch(line); m != nil {
			c.essid = m[1]
			continue
		}
		if m := encKeyOptRE.FindStringSubmatch(line); m != nil {
			c.encOff = m[1] == "off"
			continue
		}
		switch {
		case wpa2RE.MatchString(line):
			cur = &c.rsn
			cur.seen = true
			continue
		case wpaRE.MatchString(line):
			cur = &c.wpa
			cur.seen = true
			continue
		case otherIERE.MatchString(line):
			cur = nil
			continue
		}
		if cur == nil {
			continue
		}
		if m := pairwiseRE.FindStringSubmatch(line); m != nil {
			cur.pairwise = m[1]
		} else if m := authSuitesRE.FindStringSubmatch(line); m != nil {
			cur.suites = m[1]
		}
	}
	return c
}

// ParseIwlist turns `iwlist <iface> scanning` output into networks, one per
// ESSID. Hidden cells are dropped; the first cell of a repeated ESSID wins.
func ParseIwlist(o []byte) []Network {
	cells := cellRE.FindAllIndex(o, -1)
	if cells == nil {
		return nil
	}

	var res []Network
	known := make(map[string]bool)
	for i := range cells {
		start, end := cells[i][0], len(o)
		if i != len(cells)-1 {
			end = cells[i+1][0]
		}
		c := parseCell(string(o[start:end]))
		if c.essid == "" || known[c.essid] {
			continue
		}
		known[c.essid] = true
		res = append(res, c.network())
	}
	return res
}

// ParseSupplicantStatus returns the ssid and wpa_state fields of
// `wpa_cli status`.
func ParseSupplicantStatus(o []byte) (ssid, state string) {
	sc := bufio.NewScanner(strings.NewReader(string(o)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := statusSSIDRE.FindStringSubmatch(line); m != nil {
			ssid = m[1]
		} else if m := statusStateRE.FindStringSubmatch(line); m != nil {
			state = m[1]
		}
	}
	return ssid, state
}
