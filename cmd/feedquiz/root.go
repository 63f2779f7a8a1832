package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "feedquiz",
	Short:         "AWS blog digest and SAA quiz bot for Slack",
	Long:          "feedquiz posts summaries of new AWS blog articles to Slack, turns relevant ones into\nSolutions Architect Associate practice questions and grades the answers.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd)
}
