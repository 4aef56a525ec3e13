package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

func newScanCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List visible wireless networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newBackend(o.cfg, o.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			networks := scan(cmd.Context(), w, o.log)
			if len(networks) == 0 {
				fmt.Fprintln(out, "No Wi-Fi networks found.")
				return nil
			}
			printNetworks(out, networks)
			return nil
		},
	}
}

// scan treats a failed scan as an empty one.
func scan(ctx context.Context, w wifi.WiFi, l ulog.Logger) []wifi.Network {
	networks, err := w.Scan(ctx)
	if err != nil {
		l.Printf("%v", err)
		return nil
	}
	return networks
}

func printNetworks(w io.Writer, networks []wifi.Network) {
	for i, n := range networks {
		fmt.Fprintf(w, "%d: %s\n", i+1, n)
	}
}
