package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/iksnae/chatterbot/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	serverURL  string
	timeout    time.Duration
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg is the resolved configuration, available to every subcommand
	// after PersistentPreRunE.
	cfg *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatterbot",
	Short: "Chat with a ChatterBot API server from your terminal",
	Long: `A terminal client for the ChatterBot chat service.

The client keeps the whole conversation locally and sends it with every
message, so the server stays stateless. Replies, errors, and connectivity
are all reflected live in the interactive view.

Features:
  • Interactive chat with optimistic local echo
  • One-shot sends for scripting
  • Transcript export (Markdown, JSON, JSONL, YAML)
  • Service health diagnostics

Quick Start:
  chatterbot chat                        # Open the interactive chat
  chatterbot send "hello there"          # Send one message, print the reply
  chatterbot healthcheck                 # Check the service is reachable

Configuration is resolved from defaults, then ` + "`~/.config/chatterbot/config.yaml`" + `,
then CHATTERBOT_* environment variables, then flags.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			loaded.ServerURL = serverURL
		}
		if cmd.Flags().Changed("timeout") {
			loaded.Timeout = timeout
		}
		cfg = loaded

		internal.LogDebug("using server %s (timeout %s)", cfg.ServerURL, cfg.Timeout)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", internal.DefaultServerURL, "Base URL of the ChatterBot API server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", internal.DefaultTimeout, "Per-request timeout (0 disables)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: the standard user config location)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
