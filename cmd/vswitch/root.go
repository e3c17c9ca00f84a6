// Package vswitch implements the vswitch command-line interface.
package vswitch

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vlanswitch/vswitch/config"
	"github.com/vlanswitch/vswitch/internal/xlog"
	"github.com/vlanswitch/vswitch/port"
	"github.com/vlanswitch/vswitch/portspec"
)

var (
	macTableSize int
	logLevel     string
	logFormat    string
	configPath   string
)

// rootCmd is vswitch's entry point: run with no subcommand to start the IO
// loop, passing PORTSPEC positional arguments naming the switch's ports.
var rootCmd = &cobra.Command{
	Use:   "vswitch [flags] PORTSPEC...",
	Short: "A VLAN-aware Ethernet switch",
	Long: `vswitch reads framed Ethernet traffic from a packet driver on its
standard input, learns source MAC addresses per port, and forwards frames
according to each port's IEEE 802.1Q VLAN membership.

Each PORTSPEC names one port, in driver port order:

  NAME                untagged member of the default VLAN (0)
  NAME[U:VID]          untagged member of VID
  NAME[T:VID,VID,...]  tagged member of each listed VID

If no PORTSPEC arguments are given, the port topology is instead read from
the --config file's "ports:" list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVswitch(args)
	},
}

// Execute runs the root command. It is called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().IntVar(&macTableSize, "mac-table-size", 0,
		"learning table capacity (0 = use config file default)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "",
		"debug|info|warn|error (empty = use config file default)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "",
		"text|json (empty = use config file default)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"optional YAML config file")

	rootCmd.AddCommand(portsCmd)
}

// loadEffectiveConfig loads the config file (if any) and applies any flags
// given on the command line over its values; flags win.
func loadEffectiveConfig() (*config.File, error) {
	f, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if macTableSize > 0 {
		f.MACTableSize = macTableSize
	}
	if logLevel != "" {
		f.LogLevel = logLevel
	}
	if logFormat != "" {
		f.LogFormat = logFormat
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// resolvePorts builds the port table from PORTSPEC argv when given, else
// falls back to the config file's static "ports:" list.
func resolvePorts(args []string, f *config.File) (*port.Table, error) {
	if len(args) > 0 {
		return portspec.ParseAll(args)
	}
	return f.Ports()
}

func newLogger(f *config.File) xlog.Logger {
	var level slog.Level
	switch f.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if f.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return xlog.Logger{Log: slog.New(handler)}
}

// stdinFD and stdoutFD are the raw file descriptors the IO loop reads the
// driver's framed stream from and writes it back to.
const (
	stdinFD  = 0
	stdoutFD = 1
)
