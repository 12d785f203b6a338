package main

import (
	"os"

	"github.com/liberodark/pve-tool/pkg/cli"
	"github.com/liberodark/pve-tool/pkg/logger"
)

func main() {
	logger.Init()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
