// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the agelex CLI.
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

// rootCmd is the base command for the agelex CLI.
var rootCmd = &cobra.Command{
	Use:   "agelex",
	Short: "Age prediction from transcribed child speech",
	Long: `agelex turns CHILDES-style transcripts into age-bucket predictions and
measures which linguistic feature families drive those predictions.

Each pipeline stage is a subcommand: parse transcripts into an utterance
table, clean it, split it, extract feature records, and evaluate feature
groups with additive and ablation studies against an external classifier.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./agelex.yaml or ~/.config/agelex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("agelex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "agelex"))
		}
	}

	viper.SetEnvPrefix("AGELEX")
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
