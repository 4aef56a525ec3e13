package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/config"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

// leaser is implemented by backends that must configure the address
// themselves once associated.
type leaser interface {
	Lease(ctx context.Context, timeout time.Duration, retry int) error
}

// newBackend is replaced in tests.
var newBackend = openBackend

func openBackend(cfg config.Config, l ulog.Logger) (wifi.WiFi, error) {
	name := cfg.Backend
	if name == config.BackendAuto {
		switch runtime.GOOS {
		case "windows":
			name = config.BackendNetsh
		case "linux":
			name = config.BackendIWL
		default:
			return nil, fmt.Errorf("no wireless backend for %s", runtime.GOOS)
		}
	}
	l.Printf("using %s backend", name)

	switch name {
	case config.BackendNetsh:
		return wifi.NewNetshWorker(cfg.Interface, wifi.ExecRunner{}, l), nil
	case config.BackendIWL:
		return openIWL(cfg.Interface, l)
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
