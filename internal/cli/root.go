// internal/cli/root.go
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arc-language/orbuild/pkg/core"
)

var (
	cfgFile string
	debug   bool
	host    string
	target  string
	config  *core.Config

	// configErr is returned by the pipeline commands; config and version
	// still run on defaults.
	configErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orbuild",
	Short: "Locate OR-Tools and emit link directives",
	Long: `orbuild - build-time setup for the CP-SAT bindings

Generates the protobuf bindings, finds the installed OR-Tools library
(LIB_DIR_OVERRIDE/INCLUDE_DIR_OVERRIDE first, then Homebrew or the
standard Linux locations), compiles the C++ shim and prints the link
directives for the final link step.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

// NewRootCommand returns the command tree writing to out and errOut
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./orbuild.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host triple (default $HOST or the running machine)")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "target triple (default $TARGET or the running machine)")

	// Add commands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	configErr = nil
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		configErr = fmt.Errorf("loading config: %w", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
}
