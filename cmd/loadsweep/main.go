package main

import (
	"os"

	"github.com/G-Research/loadsweep/cmd/loadsweep/cmd"
	"github.com/G-Research/loadsweep/internal/common"
	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
)

// Config is handled by cmd/root.go
func main() {
	common.ConfigureCommandLineLogging()
	err := cmd.RootCmd().Execute()
	os.Exit(sweeperrors.ExitCodeFromError(err))
}
