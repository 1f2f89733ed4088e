package main

import (
	"os"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
