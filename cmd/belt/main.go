// Command belt inspects YAML/JSON documents, dates and strings with the
// utilitybelt value helpers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"utilitybelt/internal/config"
	"utilitybelt/internal/logging"
	"utilitybelt/pkg/belt"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set up by PersistentPreRunE
	registry *belt.Registry
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "belt",
		Short: "belt - classify, clone and match in-memory values",
		Long: `belt loads YAML or JSON documents and reports what the utilitybelt
helpers make of them: the kind of every value, a structural clone, ISO week
numbers for dates and named pattern matches.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "belt.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(
		newKindCmd(),
		newCloneCmd(),
		newCheckCmd(),
		newWeekCmd(),
		newMatchCmd(),
		newPatternsCmd(),
		newHTMLCmd(),
	)
	return rootCmd
}

// setup loads the config and wires logging, the default cloner and the
// pattern registry. --verbose forces debug logging on.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	registry, err = cfg.Apply()
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	logging.CLI("Running %s", cmd.CommandPath())
	logging.CLIDebug("Config loaded from %s, patterns %v", configPath, registry.Names())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
