package main

import (
	"os"

	"VisionBoard/internal/config"
	"VisionBoard/internal/ui"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if cfg.App.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("config", os.Getenv(config.EnvPath)).Debug("config loaded")

	if err := ui.RunApp(cfg); err != nil {
		log.WithError(err).Fatal("run board")
	}
}
