package main

import (
	"fmt"

	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

func openIWL(iface string, l ulog.Logger) (wifi.WiFi, error) {
	if iface == "" {
		ifaces, err := wifi.WirelessInterfaces()
		if err != nil {
			return nil, err
		}
		if len(ifaces) == 0 {
			return nil, fmt.Errorf("no wireless interface found")
		}
		iface = ifaces[0]
		l.Printf("using interface %s", iface)
	}
	return wifi.NewIWLWorker(iface, wifi.ExecRunner{}, l)
}
