package main

import (
	"os"

	"github.com/thecactoos/enterprise-sub001/internal/interfaces/cli"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
)

var version = "dev"

func main() {
	opts := cli.Options{Version: version}

	// Los comandos de cálculo funcionan sin configuración; next-number y token la necesitan.
	cfg, err := config.Load()
	if err == nil {
		opts.Config = cfg
		opts.Log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	} else {
		opts.Log = logger.New(logger.Config{Level: "warn", Output: os.Stderr})
		opts.Log.Warn().Err(err).Msg("configuración no cargada")
	}

	cli.Execute(opts)
}
