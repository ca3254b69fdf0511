package common

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rdsr/webhdfsctl/internal/common/logging"
)

// ConfigureCommandLineLogging sends diagnostics to stderr so that stdout only carries
// command output.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&logging.CommandLineFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

func ConfigureVerboseLogging(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
