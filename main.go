package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/optstruct/config"
)

var log = logrus.New()

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("error parsing log level: %v", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	cobra.CheckErr(newRootCmd(cfg).Execute())
}
