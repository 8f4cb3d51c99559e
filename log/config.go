/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

import (
	"fmt"
	"strings"
)

// Level represents log level type.
type Level int

const (
	// DebugLevel represents DEBUG log level.
	DebugLevel Level = iota

	// InfoLevel represents INFO log level.
	InfoLevel

	// WarningLevel represents WARNING log level.
	WarningLevel

	// ErrorLevel represents ERROR log level.
	ErrorLevel

	// OffLevel represents a disabled log level.
	OffLevel
)

// Config represents a logger configuration.
type Config struct {
	Level   Level
	LogPath string
}

type configProxy struct {
	Level   string `yaml:"level"`
	LogPath string `yaml:"log_path"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	switch strings.ToLower(p.Level) {
	case "debug":
		c.Level = DebugLevel
	case "", "info": // default log level
		c.Level = InfoLevel
	case "warning":
		c.Level = WarningLevel
	case "error":
		c.Level = ErrorLevel
	case "off":
		c.Level = OffLevel
	default:
		return fmt.Errorf("log.Config: unrecognized log level: %s", p.Level)
	}
	c.LogPath = p.LogPath
	return nil
}
