// Package config loads the control-node configuration file.
package config

import (
	"github.com/simon-fu/cin-rms/internal/log"
	"github.com/simon-fu/cin-rms/internal/session"
)

// Config is the full configuration tree.
type Config struct {
	Node   session.Config    `mapstructure:"node" yaml:"node"`
	Logger *log.LoggerConfig `mapstructure:"logger" yaml:"logger,omitempty"`
}

func applyDefaults(cfg *Config) {
	if cfg.Node.SocketDir == "" {
		cfg.Node.SocketDir = "/var/run/cin"
	}
	if cfg.Node.NodeID == 0 {
		cfg.Node.NodeID = 5
	}
	if cfg.Node.BufferSize == 0 {
		cfg.Node.BufferSize = session.DefaultBufferSize
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DefaultConfig()
	}
}
