package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rdsr/webhdfsctl/cmd/webhdfsctl/cmd"
	"github.com/rdsr/webhdfsctl/internal/common"
	"github.com/rdsr/webhdfsctl/internal/common/logging"
)

func main() {
	common.ConfigureCommandLineLogging()
	root := cmd.RootCmd()
	if err := root.Execute(); err != nil {
		logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Error("webhdfsctl failed")
		os.Exit(1)
	}
}
