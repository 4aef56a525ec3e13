// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile renders connection profiles for the wireless backends.
//
// Values are interpolated verbatim. An SSID or password containing the
// document's own markup (for example '<' in a WLANProfile, or '"' in a
// wpa_supplicant block) produces a document the consuming utility will
// reject or misread.
package profile

import (
	"fmt"
	"strings"
)

// Authentication tags understood by the WLANProfile schema.
const (
	WPA3SAE = "WPA3SAE"
	WPA2PSK = "WPA2PSK"
	WPAPSK  = "WPAPSK"
	Open    = "open"
)

// Encryption tags understood by the WLANProfile schema.
const (
	AES  = "AES"
	TKIP = "TKIP"
	None = "none"
)

const (
	wlanOpen = `<?xml version="1.0"?>
<WLANProfile xmlns="http://www.microsoft.com/networking/WLAN/profile/v1">
    <name>%s</name>
    <SSIDConfig>
        <SSID>
            <name>%s</name>
        </SSID>
    </SSIDConfig>
    <connectionType>ESS</connectionType>
    <connectionMode>auto</connectionMode>
    <MSM>
        <security>
            <authEncryption>
                <authentication>open</authentication>
                <encryption>none</encryption>
                <useOneX>false</useOneX>
            </authEncryption>
        </security>
    </MSM>
</WLANProfile>`
	wlanShared = `<?xml version="1.0"?>
<WLANProfile xmlns="http://www.microsoft.com/networking/WLAN/profile/v1">
    <name>%s</name>
    <SSIDConfig>
        <SSID>
            <name>%s</name>
        </SSID>
    </SSIDConfig>
    <connectionType>ESS</connectionType>
    <connectionMode>auto</connectionMode>
    <MSM>
        <security>
            <authEncryption>
                <authentication>%s</authentication>
                <encryption>%s</encryption>
                <useOneX>false</useOneX>
            </authEncryption>
            <sharedKey>
                <keyType>passPhrase</keyType>
                <protected>false</protected>
                <keyMaterial>%s</keyMaterial>
            </sharedKey>
        </security>
    </MSM>
</WLANProfile>`
)

// Security is the resolved authentication and encryption of a network.
type Security struct {
	Authentication string
	Encryption     string
}

// Open reports whether the network takes no key.
func (s Security) Open() bool {
	return s.Authentication == Open
}

// Resolve maps the free-text auth and encryption reported by a scan onto
// profile tags. Matching is a case-insensitive substring test, first match
// wins; unrecognized values fall back to WPA2PSK and AES. An open network
// always gets encryption "none", whatever the scan said.
func Resolve(auth, encryption string) Security {
	auth, encryption = strings.ToLower(auth), strings.ToLower(encryption)

	var s Security
	switch {
	case strings.Contains(auth, "wpa3"):
		s.Authentication = WPA3SAE
	case strings.Contains(auth, "wpa2"):
		s.Authentication = WPA2PSK
	case strings.Contains(auth, "wpa"):
		s.Authentication = WPAPSK
	case strings.Contains(auth, "open"):
		s.Authentication = Open
	default:
		s.Authentication = WPA2PSK
	}

	switch {
	case s.Open():
		s.Encryption = None
	case strings.Contains(encryption, "aes"):
		s.Encryption = AES
	case strings.Contains(encryption, "tkip"):
		s.Encryption = TKIP
	default:
		s.Encryption = AES
	}
	return s
}

// WLAN renders a WLANProfile document for `netsh wlan add profile`.
// Open networks get no sharedKey section and password is ignored; every
// other network carries password as an unprotected passPhrase.
func WLAN(ssid, auth, encryption, password string) string {
	s := Resolve(auth, encryption)
	if s.Open() {
		return fmt.Sprintf(wlanOpen, ssid, ssid)
	}
	return fmt.Sprintf(wlanShared, ssid, ssid, s.Authentication, s.Encryption, password)
}
