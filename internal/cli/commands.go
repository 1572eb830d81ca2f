// Package cli implements the archsrv command line: serve (the default), initdb and version.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tansive/archsrv/internal/archsrv/config"
	"github.com/tansive/archsrv/internal/common/logtrace"
)

var errorLabel = color.New(color.FgRed)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type options struct {
	configFile string
	jsonOutput bool
}

// NewRootCmd returns the archsrv command tree. Running it without a subcommand serves.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "archsrv [command] [flags]",
		Short: "archsrv - HTTP service for architecture records",
		Long: `archsrv serves create, list, update and delete operations over the
architectures table, with CORS headers for browser clients.

The database is taken from DATABASE_URL (postgres://... or sqlite://<path>).

Examples:
  # Run the server on port 9091
  archsrv

  # Drop and recreate the architectures table
  archsrv initdb

  # Print the server version
  archsrv version`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newInitDBCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if jsonOut, _ := rootCmd.PersistentFlags().GetBool("json"); jsonOut {
			printJSON(os.Stdout, map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig loads the configuration and initializes logging at the configured level.
func loadConfig(opts *options) (*config.ConfigParam, error) {
	c, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	logtrace.InitLogger(c.LogLevel)
	log.Debug().Str("config_file", opts.configFile).Msg("configuration loaded")
	return c, nil
}

func printJSON(w io.Writer, data any) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(w, string(b))
}
