package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the version of the application, set at build time
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("feedquiz %s\n", Version)
		fmt.Println("AWS blog quiz bot")
		fmt.Println("github.com/pders01/feedquiz")
	},
}
