package main

import (
	"os"

	"github.com/tiags/rfd-radar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
