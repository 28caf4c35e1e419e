package main

import (
	"os"

	"github.com/mermaidkeep/mermaidkeep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
