// internal/cli/config.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/orbuild/pkg/core"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := core.DefaultConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := core.SaveConfig(core.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}
