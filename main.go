package main

import (
	"os"

	"github.com/voxshop/shopbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
