// Package config loads the TOML configuration for both wavectl
// binaries. Missing keys keep their defaults; present keys are
// validated on load.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/wavectl/internal/protocol"
)

// Server is the wavectl daemon configuration.
type Server struct {
	ListenAddr     string
	MetricsAddr    string
	LogLevel       string
	TickPeriod     time.Duration
	StandbySpeed   float64
	StandbyReverse bool
	LedCount       int
	Brightness     float64
}

func DefaultServer() Server {
	return Server{
		ListenAddr:   ":20200",
		LogLevel:     "info",
		TickPeriod:   50 * time.Millisecond,
		StandbySpeed: 1.0,
		LedCount:     60,
		Brightness:   1.0,
	}
}

type serverFile struct {
	ListenAddr     string  `toml:"listen_addr"`
	MetricsAddr    string  `toml:"metrics_addr"`
	LogLevel       string  `toml:"log_level"`
	TickPeriod     string  `toml:"tick_period"`
	StandbySpeed   float64 `toml:"standby_speed"`
	StandbyReverse bool    `toml:"standby_reverse"`
	LedCount       int     `toml:"led_count"`
	Brightness     float64 `toml:"brightness"`
}

// LoadServer reads path over the defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	var raw serverFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Server{}, fmt.Errorf("load server config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("tick_period") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.TickPeriod))
		if err != nil {
			return Server{}, fmt.Errorf("parse tick_period: %w", err)
		}
		cfg.TickPeriod = d
	}
	if meta.IsDefined("standby_speed") {
		cfg.StandbySpeed = raw.StandbySpeed
	}
	if meta.IsDefined("standby_reverse") {
		cfg.StandbyReverse = raw.StandbyReverse
	}
	if meta.IsDefined("led_count") {
		cfg.LedCount = raw.LedCount
	}
	if meta.IsDefined("brightness") {
		cfg.Brightness = raw.Brightness
	}

	if err := ValidateServer(cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func ValidateServer(cfg Server) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("server config missing listen_addr")
	}
	if cfg.TickPeriod <= 0 {
		return fmt.Errorf("server config tick_period must be positive")
	}
	if cfg.LedCount <= 0 {
		return fmt.Errorf("server config led_count must be positive")
	}
	if cfg.Brightness < 0 || cfg.Brightness > 1 {
		return fmt.Errorf("server config brightness must be in [0, 1]")
	}
	return nil
}

// Node is the remote node configuration.
type Node struct {
	ServerAddr     string
	LogLevel       string
	Mode           protocol.DataMode
	NoAck          bool
	SampleInterval time.Duration
	BeatInterval   time.Duration
}

func DefaultNode() Node {
	return Node{
		ServerAddr:     "127.0.0.1:20200",
		LogLevel:       "info",
		Mode:           protocol.ModeNoveltyBeats,
		SampleInterval: 50 * time.Millisecond,
		BeatInterval:   500 * time.Millisecond,
	}
}

type nodeFile struct {
	ServerAddr     string `toml:"server_addr"`
	LogLevel       string `toml:"log_level"`
	Mode           string `toml:"mode"`
	NoAck          bool   `toml:"no_ack"`
	SampleInterval string `toml:"sample_interval"`
	BeatInterval   string `toml:"beat_interval"`
}

// LoadNode reads path over the defaults.
func LoadNode(path string) (Node, error) {
	cfg := DefaultNode()

	var raw nodeFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Node{}, fmt.Errorf("load node config: %w", err)
	}

	if meta.IsDefined("server_addr") {
		cfg.ServerAddr = strings.TrimSpace(raw.ServerAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("mode") {
		mode, err := ParseMode(raw.Mode)
		if err != nil {
			return Node{}, err
		}
		cfg.Mode = mode
	}
	if meta.IsDefined("no_ack") {
		cfg.NoAck = raw.NoAck
	}
	if meta.IsDefined("sample_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.SampleInterval))
		if err != nil {
			return Node{}, fmt.Errorf("parse sample_interval: %w", err)
		}
		cfg.SampleInterval = d
	}
	if meta.IsDefined("beat_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.BeatInterval))
		if err != nil {
			return Node{}, fmt.Errorf("parse beat_interval: %w", err)
		}
		cfg.BeatInterval = d
	}

	if err := ValidateNode(cfg); err != nil {
		return Node{}, err
	}
	return cfg, nil
}

func ValidateNode(cfg Node) error {
	if strings.TrimSpace(cfg.ServerAddr) == "" {
		return fmt.Errorf("node config missing server_addr")
	}
	if !cfg.Mode.Valid() {
		return fmt.Errorf("node config has invalid mode")
	}
	if cfg.SampleInterval <= 0 {
		return fmt.Errorf("node config sample_interval must be positive")
	}
	if cfg.BeatInterval <= 0 {
		return fmt.Errorf("node config beat_interval must be positive")
	}
	return nil
}

// ParseMode maps a config string onto a wire data mode.
func ParseMode(raw string) (protocol.DataMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "novelty":
		return protocol.ModeNovelty, nil
	case "novelty_beats", "noveltybeats", "beats":
		return protocol.ModeNoveltyBeats, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", raw)
	}
}
