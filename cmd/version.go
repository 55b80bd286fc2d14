package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set at build time with -ldflags "-X github.com/arcanaland/tango/cmd.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	versionShort  bool
	versionOutput string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tango version",
	Example: `
tango version
tango version --short`,
	Run: func(cmd *cobra.Command, _ []string) {
		resp := goversion.FuncWithOutput(versionShort, version, commit, date, versionOutput)
		fmt.Fprint(cmd.OutOrStdout(), resp)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Print just the version number.")
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
}
