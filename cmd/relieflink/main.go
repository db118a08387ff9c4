package main

import (
	"os"

	"github.com/relieflink/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
