package cli

import (
	"github.com/spf13/cobra"

	"github.com/neboloop/socialshare/internal/config"
)

// Version is set at build time via -ldflags "-X .../cmd/socialshare.Version=1.2.0".
var Version = "dev"

// Shared CLI flags (used across multiple command files)
var (
	cfgFile string
	verbose bool
	jsonOut bool
)

// ServerConfig holds the loaded configuration (set by main)
var ServerConfig *config.Config

// baseConfig is the embedded configuration, kept so --config can be overlaid.
var baseConfig []byte

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config, base []byte) *cobra.Command {
	ServerConfig = c
	baseConfig = base

	rootCmd := &cobra.Command{
		Use:   "socialshare",
		Short: "Social Sharing - share buttons for your site",
		Long: `Social Sharing renders share buttons for the pages of a site and serves
the settings page used to configure them.

Run 'socialshare serve' to start the HTTP service.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file overlay (default: <data_dir>/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add commands
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(RenderCmd())
	rootCmd.AddCommand(SettingsCmd())
	rootCmd.AddCommand(LicenseCmd())
	rootCmd.AddCommand(TokenCmd())
	rootCmd.AddCommand(SchemaCmd())

	return rootCmd
}
