package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danmuck/wavectl/internal/config"
)

type serverConfig = config.Server

// loadServerConfig reads the TOML file at path. A missing file is not
// an error; the built-in defaults apply.
func loadServerConfig(path string) (serverConfig, error) {
	cfg, err := config.LoadServer(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "wavectl: no config at %s, using defaults\n", path)
		return config.DefaultServer(), nil
	}
	return serverConfig{}, err
}
