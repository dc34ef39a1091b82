package main

import (
	"os"

	"github.com/rustyeddy/fibjournal/cmd/fibjournal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
