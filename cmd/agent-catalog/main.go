// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the agent-catalog CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the agent-catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "agent-catalog",
	Short: "Metadata manifest and catalog for agent configuration assets",
	Long: `agent-catalog scans a repository's .github/ tree for agent configuration
assets (prompts, toolsets, chatmodes), extracts a title and description from
each file, and writes a JSON metadata manifest to build/agent_metadata.json.

The catalog subcommands index the manifest into a local SQLite database
for full-text search and export.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./agent-catalog.yaml or ~/.config/agent-catalog/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("agent-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "agent-catalog"))
		}
	}

	viper.SetEnvPrefix("AGENT_CATALOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
