// internal/cli/root.go
// Package cli wires the cobra commands for papyr.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skellert/papyr/internal/appconfig"
	"github.com/skellert/papyr/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "papyr",
	Short: "papyr — terminal question answering over a local research corpus",
	Long: "papyr chunks and embeds a directory of text files into a persistent\n" +
		"vector index, then answers questions about them with a local model,\n" +
		"streaming the answer as it is generated.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load and validate the config file (schema + semantic checks,
		//    with legacy-path fallback).
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2) Flags override config: if the user set --debug, viper already
		//    reflects it; otherwise push the config value into viper so both
		//    agree on the final value.
		if cmd.Flags().Changed("debug") {
			cfg.Debug = viper.GetBool("debug")
		} else {
			viper.Set("debug", cfg.Debug)
		}

		currentConfig = &cfg
		return logging.Init(cfg.LogFilePath())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	viper.SetDefault("debug", false)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// GetConfig returns the loaded application configuration for subcommands.
func GetConfig() *appconfig.Config {
	return currentConfig
}
