package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vecdex",
	Short: "Ingest documents into a vector index",
	Long:  `A command-line tool that chunks, embeds and indexes PDF and plain-text documents into a vector store.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Secrets come from the environment; a .env file is a convenience.
		_ = godotenv.Load()
	},
}

// Execute runs the root command and exits non-zero on any unrecovered error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")
}
