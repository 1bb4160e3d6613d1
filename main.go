package main

import (
	"os"

	"github.com/website1975/vatly12CTST/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
