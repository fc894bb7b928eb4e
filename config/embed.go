package config

import _ "embed"

// DefaultConfigYAML holds the built-in defaults, overridden by files and environment.
//
//go:embed config.yaml
var DefaultConfigYAML []byte
