// Command stackctl resolves profiles and manages the catalog from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"example.com/supplementstack/internal/config"
	"example.com/supplementstack/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "stackctl",
		Short:         "Operate the supplement stack recommender",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logging.Init(logging.Config{Level: level, Format: "console", Output: cmd.ErrOrStderr()})
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (overrides CONFIG_PATH)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newResolveCmd(opts), newCatalogCmd(opts), newTokenCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	if o.configPath != "" {
		if err := os.Setenv(config.PathEnvVar, o.configPath); err != nil {
			return config.Config{}, fmt.Errorf("set %s: %w", config.PathEnvVar, err)
		}
	}
	return config.Load()
}
