// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	nopassphrase = `network={
	ssid="%s"
	key_mgmt=NONE
}
`
	sae = `network={
	ssid="%s"
	key_mgmt=SAE
	sae_password="%s"
	ieee80211w=2
}
`
	psk = `network={
	ssid="%s"
	key_mgmt=WPA-PSK
	proto=%s
	pairwise=%s
	psk=%s
}
`
)

// ErrPassphraseLength is returned for WPA passphrases outside 8..63
// characters, which have no PSK derivation.
var ErrPassphraseLength = errors.New("passphrase must be 8..63 characters")

// PSK derives the 256-bit pre-shared key for ssid the way wpa_passphrase
// does: PBKDF2-SHA1, 4096 rounds, SSID as salt.
func PSK(ssid, passphrase string) (string, error) {
	if len(passphrase) < 8 || len(passphrase) > 63 {
		return "", ErrPassphraseLength
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(ssid), 4096, 32, sha1.New)
	return hex.EncodeToString(key), nil
}

// Supplicant renders a wpa_supplicant network block using the same
// resolution rules as WLAN.
func Supplicant(ssid, auth, encryption, password string) (string, error) {
	s := Resolve(auth, encryption)
	switch s.Authentication {
	case Open:
		return fmt.Sprintf(nopassphrase, ssid), nil
	case WPA3SAE:
		return fmt.Sprintf(sae, ssid, password), nil
	}

	key, err := PSK(ssid, password)
	if err != nil {
		return "", fmt.Errorf("essid: %v: %w", ssid, err)
	}
	proto := "RSN"
	if s.Authentication == WPAPSK {
		proto = "WPA"
	}
	pairwise := "CCMP"
	if s.Encryption == TKIP {
		pairwise = "TKIP"
	}
	return fmt.Sprintf(psk, ssid, proto, pairwise, key), nil
}
