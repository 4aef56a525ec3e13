package main

import (
	"github.com/spf13/cobra"
	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/config"
)

var version = "dev"

// options is shared by every subcommand.
type options struct {
	configPath string
	verbose    bool
	cfg        config.Config
	log        ulog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{log: ulog.Null}

	cmd := &cobra.Command{
		Use:   "wlanaudit",
		Short: "Check a wireless network's passphrase against a wordlist",
		Long: `wlanaudit lists nearby wireless networks and, for the one you pick, installs a
connection profile for every password in a wordlist until the OS joins the
network. Only run it against networks you are authorized to test.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "path to "+config.DefaultConfigFile)
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")
	pf.String("backend", config.BackendAuto, "wireless backend: auto, netsh or iwl")
	pf.StringP("interface", "i", "", "wireless interface (auto-detected if omitted)")

	cmd.AddCommand(newScanCmd(o))
	cmd.AddCommand(newRunCmd(o))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// load resolves the configuration file and lets flags that were set on the
// command line override it.
func (o *options) load(cmd *cobra.Command) error {
	if o.verbose {
		o.log = ulog.Log
	}
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("interface") {
		cfg.Interface, _ = flags.GetString("interface")
	}
	if flags.Changed("wordlist") {
		cfg.Wordlist, _ = flags.GetString("wordlist")
	}
	if flags.Changed("settle") {
		cfg.Settle, _ = flags.GetDuration("settle")
	}
	if flags.Changed("poll-interval") {
		cfg.PollInterval, _ = flags.GetDuration("poll-interval")
	}
	if flags.Changed("poll-timeout") {
		cfg.PollTimeout, _ = flags.GetDuration("poll-timeout")
	}
	if flags.Changed("dhcp") {
		cfg.DHCP, _ = flags.GetBool("dhcp")
	}
	if flags.Changed("tui") {
		cfg.TUI, _ = flags.GetBool("tui")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("wlanaudit %s\n", version)
		},
	}
}
