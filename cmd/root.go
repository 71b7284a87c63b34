package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Carmen-Shannon/polyview/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "polyview",
	Short: "Load COLLADA polylist meshes and view them",
	Long: `
Loads the first polylist mesh of a COLLADA 1.4 document and either shows it in a
lit, rotating view, prints a report about it, or validates a batch of documents.

Settings are read from $HOME/.polyview.yaml (or --config), POLYVIEW_* environment
variables and flags, in increasing order of precedence.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log loader and renderer diagnostics")
}

// loadConfig reads the configuration and overlays the flags of cmd that changed.
// Flags are bound per invocation because several commands share a key.
//
// Parameters:
//   - cmd: the running command
//   - bindings: viper key to flag name
//
// Returns:
//   - *config.Config: the validated configuration
//   - error: error if a file cannot be read or a value is invalid
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	for key, name := range bindings {
		if err := bindFlag(v, key, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	return config.Load(v)
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag bound to %s", key)
	}
	return v.BindPFlag(key, flag)
}

// newLogger returns the diagnostics logger. Without --verbose diagnostics are dropped.
func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
}
