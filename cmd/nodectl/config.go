package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/danmuck/wavectl/internal/config"
	"github.com/danmuck/wavectl/internal/observability"
)

type nodeConfig = config.Node

// loadNodeConfig reads the TOML file at path. A missing file is not an
// error; the built-in defaults apply.
func loadNodeConfig(path string) (nodeConfig, error) {
	cfg, err := config.LoadNode(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "nodectl: no config at %s, using defaults\n", path)
		return config.DefaultNode(), nil
	}
	return nodeConfig{}, err
}

func observabilityLogger(level string) zerolog.Logger {
	log := observability.InitLogger("nodectl")
	zerolog.SetGlobalLevel(observability.ParseLevel(level))
	return log
}
