// Package main provides the entry point for the LexaLab HTTP API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "lexalab",
	Short:        "LexaLab weak-phrase analyzer",
	Long:         "LexaLab finds hedges, minimizers, casual apologies and casualisms in text and suggests more confident wording, over REST or from the command line.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
