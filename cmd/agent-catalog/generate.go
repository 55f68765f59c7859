// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/agent-catalog/internal/scan"
	"github.com/pdiddy/agent-catalog/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan agent assets and write the metadata manifest",
	Long: `Generate walks the prompts, toolsets, and chatmodes directories under
the assets tree, extracts a title and description from each readable text
file, and writes build/agent_metadata.json. Unreadable or binary files are
skipped.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := scanConfig(cmd)
	_, err := scan.Run(cfg, os.Stdout)
	return err
}

// scanConfig resolves the scan settings: explicit flags win, then config
// file values, then compiled-in defaults.
func scanConfig(cmd *cobra.Command) types.ScanConfig {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = viper.GetString("scan.root")
	}
	if root == "" {
		root = "."
	}

	assetsDir, _ := cmd.Flags().GetString("assets-dir")
	if assetsDir == "" {
		assetsDir = viper.GetString("scan.assets_dir")
	}
	if assetsDir == "" {
		assetsDir = ".github"
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = viper.GetString("scan.out_file")
	}
	if out == "" {
		out = "build/agent_metadata.json"
	}

	return types.ScanConfig{
		Root:      root,
		AssetsDir: assetsDir,
		OutFile:   out,
	}
}

func init() {
	generateCmd.Flags().String("root", "", "repository root to scan (default \".\")")
	generateCmd.Flags().String("assets-dir", "", "assets directory under the root (default \".github\")")
	generateCmd.Flags().String("out", "", "manifest output path under the root (default \"build/agent_metadata.json\")")

	rootCmd.AddCommand(generateCmd)
}
