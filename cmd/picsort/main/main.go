package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/picsort/cmd/picsort"
	"github.com/arthur-debert/picsort/pkg/style"
)

func main() {
	rootCmd := picsort.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
