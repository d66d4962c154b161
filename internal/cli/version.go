// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "orbuild version 0.1.0")
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/arc-language/orbuild")
	},
}
