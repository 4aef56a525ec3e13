//go:build !linux

package main

import (
	"fmt"
	"runtime"

	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

func openIWL(iface string, l ulog.Logger) (wifi.WiFi, error) {
	return nil, fmt.Errorf("the iwl backend needs linux, not %s", runtime.GOOS)
}
