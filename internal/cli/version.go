package cli

import (
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// ServerVersion is the archsrv release. It follows semantic versioning.
const ServerVersion = "0.1.0"

var serverVersion = semver.MustParse(ServerVersion)

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of archsrv",
		Run: func(cmd *cobra.Command, args []string) {
			if opts.jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]string{"version": "v" + serverVersion.String()})
				return
			}
			cmd.Printf("archsrv v%s\n", serverVersion)
		},
	}
}
