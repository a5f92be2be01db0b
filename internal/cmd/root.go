// Package cmd implements the cmdq command line interface. The CLI is a
// thin wrapper around internal/taskqueue: it loads task files, wires the
// shell runner and logger into the queue, and renders results.
package cmd

import (
	"strings"

	"cmdq/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cmdq",
	Short: "Priority-ordered command execution queue",
	Long: `cmdq executes shell commands in descending priority order, recording
per-task outcome, captured output and elapsed time.

Tasks are defined in a YAML task file and run strictly one at a time:
higher priority buckets first, insertion order within a bucket.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cmdq/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "minimum log level (debug/info/warn/error)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CMDQ")
	// Replace dots with underscores for nested keys in env vars
	// e.g., CMDQ_RUN_AUTO_CLEAR for run.auto_clear
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
