package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/spf13/cobra"
	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/attempt"
	"github.com/u-root/wlanaudit/pkg/config"
	"github.com/u-root/wlanaudit/pkg/menu"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

const (
	dhcpTimeout = 15 * time.Second
	dhcpRetry   = 3
)

var errSelection = errors.New("invalid selection")

type runFlags struct {
	network int
	ssid    string
}

func newRunCmd(o *options) *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Try every password of a wordlist against one network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return o.run(ctx, cmd, rf)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&rf.network, "network", "n", 0, "number of the network to test, as listed by scan")
	f.StringVar(&rf.ssid, "ssid", "", "name of the network to test")
	f.StringP("wordlist", "w", config.DefaultWordlist, "password wordlist, one candidate per line")
	f.Duration("settle", 5*time.Second, "wait after connecting before checking the connection")
	f.Duration("poll-interval", time.Second, "interval between connection checks")
	f.Duration("poll-timeout", 0, "keep checking the connection this long; 0 checks once")
	f.Bool("dhcp", false, "lease an address after a successful connection (iwl backend)")
	f.Bool("tui", false, "pick the network and wordlist in a terminal UI")
	return cmd
}

func (o *options) run(ctx context.Context, cmd *cobra.Command, rf runFlags) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	log := newSwitchLog(o.log)
	w, err := newBackend(o.cfg, log)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Scanning Wi-Fi networks...")
	networks := scan(ctx, w, log)
	if len(networks) == 0 {
		fmt.Fprintln(out, "No Wi-Fi networks found.")
		return nil
	}

	promptWordlist := !cmd.Flags().Changed("wordlist") && rf.network == 0 && rf.ssid == ""
	path := o.cfg.Wordlist
	var n wifi.Network

	// Nothing else may write to out while the terminal UI is up.
	closeUI := func() {}
	trying := func(p attempt.Progress) {
		fmt.Fprintf(out, "Trying password: %s\n", p.Password)
	}
	if o.cfg.TUI {
		if err := menu.Init(); err != nil {
			return err
		}
		verbose := log.set(ulog.Null)
		closeUI = sync.OnceFunc(func() {
			menu.Close()
			log.set(verbose)
		})
		defer closeUI()

		uiEvents := ui.PollEvents()
		if n, path, err = pickTUI(networks, rf, path, promptWordlist, uiEvents); err != nil {
			return err
		}
		progress := menu.NewProgress(n.SSID)
		trying = func(p attempt.Progress) {
			progress.Update(fmt.Sprintf("Attempt %d (line %d)\nTrying password: %s", p.Attempt, p.Line, p.Password))
		}
	} else {
		printNetworks(out, networks)
		if n, err = pickNetwork(networks, rf, in, out); err != nil {
			return err
		}
		fmt.Fprintf(out, "Selected network: %s\n", n.SSID)
		if promptWordlist {
			path = askWordlist(path, in, out)
		}
	}

	wordlist, err := os.Open(path)
	if err != nil {
		closeUI()
		return fmt.Errorf("%w: %w", attempt.ErrWordlist, err)
	}
	defer wordlist.Close()

	if !o.cfg.TUI {
		fmt.Fprintln(out, "Starting password attempts...")
	}
	c := attempt.New(w,
		attempt.WithSettle(o.cfg.Settle),
		attempt.WithPoll(o.cfg.PollInterval, o.cfg.PollTimeout),
		attempt.WithLogger(log))
	ok, err := attempt.Run(ctx, c, n, wordlist,
		attempt.WithLoopLogger(log),
		attempt.WithTrying(trying))
	closeUI()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Password not found in wordlist.")
		return nil
	}
	fmt.Fprintln(out, "Password found and connected successfully!")

	if l, isLeaser := w.(leaser); isLeaser && o.cfg.DHCP {
		if err := l.Lease(ctx, dhcpTimeout, dhcpRetry); err != nil {
			return err
		}
	}
	return nil
}

// pickNetwork chooses by --ssid, then --network, then by asking on in.
func pickNetwork(networks []wifi.Network, rf runFlags, in *bufio.Reader, out io.Writer) (wifi.Network, error) {
	if rf.ssid != "" {
		for _, n := range networks {
			if n.SSID == rf.ssid {
				return n, nil
			}
		}
		return wifi.Network{}, fmt.Errorf("%w: no network named %q", errSelection, rf.ssid)
	}

	choice := rf.network
	if choice == 0 {
		fmt.Fprint(out, "Select a network by number: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return wifi.Network{}, fmt.Errorf("%w: %v", errSelection, err)
		}
		if choice, err = strconv.Atoi(strings.TrimSpace(line)); err != nil {
			return wifi.Network{}, fmt.Errorf("%w: %q is not a number", errSelection, strings.TrimSpace(line))
		}
	}
	if choice < 1 || choice > len(networks) {
		return wifi.Network{}, fmt.Errorf("%w: %d is not between 1 and %d", errSelection, choice, len(networks))
	}
	return networks[choice-1], nil
}

// askWordlist returns def when the operator just presses enter.
func askWordlist(def string, in *bufio.Reader, out io.Writer) string {
	fmt.Fprintf(out, "Enter path to password wordlist (default: %s): ", def)
	line, _ := in.ReadString('\n')
	if p := strings.TrimSpace(line); p != "" {
		return p
	}
	return def
}

// pickTUI is pickNetwork and askWordlist on the terminal UI. The flags
// still take precedence over the menu.
func pickTUI(networks []wifi.Network, rf runFlags, def string, askPath bool, uiEvents <-chan ui.Event) (wifi.Network, string, error) {
	var (
		n   wifi.Network
		err error
	)
	if rf.ssid != "" || rf.network != 0 {
		n, err = pickNetwork(networks, rf, nil, io.Discard)
	} else if n, err = menu.SelectNetwork(networks, uiEvents); err != nil {
		err = fmt.Errorf("%w: %v", errSelection, err)
	}
	if err != nil || !askPath {
		return n, def, err
	}
	path, err := menu.WordlistPath(def, uiEvents)
	return n, path, err
}
