package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/pixel-tools/internal/app"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)

	if err := app.Run(app.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}); err != nil {
		log.WithError(err).Error("pixel-tools failed")
		os.Exit(1)
	}
}
