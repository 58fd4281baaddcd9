package main

import (
	"os"

	"github.com/docpress/docpress/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
