package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/picsort/cmd/picsort"
	"github.com/arthur-debert/picsort/internal/version"
)

func main() {
	rootCmd := picsort.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PICSORT",
		Section: "1",
		Source:  "picsort " + version.Version,
		Manual:  "picsort manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
