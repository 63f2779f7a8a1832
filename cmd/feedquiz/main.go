package main

import (
	"fmt"
	"os"

	"github.com/pders01/feedquiz/internal/debuglog"
)

func main() {
	err := rootCmd.Execute()
	debuglog.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
