package main

import (
	"os"

	"github.com/kurtulus-bartu/personal-assistant/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
