package service

import (
	"flag"
	"fmt"
	"os"

	"commentsapi/app/config"
	"commentsapi/app/logger"

	"github.com/sirupsen/logrus"
)

// Version is stamped at build time with -ldflags "-X commentsapi/service.Version=...".
var Version = "dev"

const defaultEnvFile = ".env"

// setup parses the flags shared by every command, loads the configuration
// and builds the logger. It returns the remaining positional arguments.
func setup(name string, args []string) (*config.Config, *logrus.Logger, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	envFile := fs.String("env-file", defaultEnvFile, "optional dotenv file read before the environment")
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, fs.Args(), nil
}
