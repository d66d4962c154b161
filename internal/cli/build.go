// internal/cli/build.go
package cli

import (
	"errors"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/arc-language/orbuild"
	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/diag"
)

var (
	skipNative bool
	format     string
	outDir     string
)

// ErrReported is returned when the failure was already written as a diagnostic
var ErrReported = errors.New("build failed")

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the whole pipeline and print link directives",
	Long: `Validate the target, generate protobuf bindings, locate the library,
compile the shim and print the link directives.

Examples:
  orbuild build
  LIB_DIR_OVERRIDE=/opt/ortools/lib INCLUDE_DIR_OVERRIDE=/opt/ortools/include orbuild build
  orbuild build --format=cgo
  DOCS_RS=1 orbuild build`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&skipNative, "skip-native", false, "skip shim compilation (documentation builds)")
	buildCmd.Flags().StringVar(&format, "format", "", "output format: lines or cgo")
	buildCmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the compiled archive")
}

func runBuild(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	if format != "" {
		config.Format = format
	}
	if outDir != "" {
		config.OutDir = outDir
	}

	orch, err := orbuild.NewFromConfig(config, core.OSHost{}, orbuild.Setup{
		Host:       host,
		Target:     target,
		SkipNative: skipNative,
	})
	if err != nil {
		return err
	}

	res := orch.Run(cmd.Context())
	if err := orbuild.Emit(cmd.OutOrStdout(), res, config); err != nil {
		if !res.OK() {
			printFailure(cmd, res)
			return ErrReported
		}
		return err
	}
	return nil
}

func printFailure(cmd *cobra.Command, res *orbuild.Result) {
	d := diag.Diagnose(res.Err)
	w := cmd.ErrOrStderr()
	color.Fprintf(w, "<danger>✗ %s failed</> (%s)\n", res.Failed, d.Kind)
	color.Fprintf(w, "  %s\n", d.Message)
	if d.Hint != "" {
		color.Fprintf(w, "  <info>hint:</> %s\n", d.Hint)
	}
}
