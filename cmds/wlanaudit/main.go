// Command wlanaudit checks the passphrase of a wireless network you
// administer against a wordlist.
//
// Synopsis:
//
//	wlanaudit scan
//	wlanaudit run [--network N | --ssid NAME] [--wordlist PATH] [--tui]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
