// internal/cli/locate.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/orbuild"
	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/diag"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show where the library would be found",
	Long:  `Run only the override check and platform discovery, without generating or compiling anything.`,
	Args:  cobra.NoArgs,
	RunE:  runLocate,
}

func runLocate(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	orch, err := orbuild.NewFromConfig(config, core.OSHost{}, orbuild.Setup{Host: host, Target: target})
	if err != nil {
		return err
	}

	loc, err := orch.Locate()
	if err != nil {
		d := diag.Diagnose(err)
		return fmt.Errorf("%s (hint: %s)", d.Message, d.Hint)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source:      %s\n", loc.Source)
	fmt.Fprintf(out, "Include dir: %s\n", loc.IncludeDir)
	fmt.Fprintf(out, "Lib dirs:    %s\n", strings.Join(loc.LinkSearch, ", "))
	return nil
}
