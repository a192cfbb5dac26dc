// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs of the
// wallscope client and server, and loads them from TOML or
// YAML files.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/wallscope/base/defaults"
	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/gesture"
	"cogentcore.org/wallscope/scene"
	"cogentcore.org/wallscope/viewport"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the main config struct that contains all of the
// configuration options for wallscope. Keys in files are the
// lowercase field names, for example gesture.longpress.
type Config struct {

	// Log has the logging options.
	Log Log

	// Gesture has the gesture recognizer thresholds.
	Gesture gesture.Config

	// Viewport has the camera rig speeds and limits.
	Viewport viewport.Config

	// Scene has the part animation options.
	Scene scene.Config

	// Server has the display server options.
	Server Server

	// Client has the touch client options.
	Client Client
}

// Log has the logging options.
type Log struct {

	// Level is the minimum level logged.
	Level string `default:"info" validate:"oneof=debug info warn error"`
}

// Server has the display server options.
type Server struct {

	// Addr is the address the HTTP server listens on.
	Addr string `default:":8080" validate:"required"`

	// FrameRate is the number of update loop frames per second.
	FrameRate int `default:"60" validate:"gt=0,lte=1000"`

	// Model is the model loaded at start.
	Model string `default:"cube" validate:"required"`

	// Mode is the gin mode of the HTTP server.
	Mode string `default:"release" validate:"oneof=debug release test"`
}

// Client has the touch client options.
type Client struct {

	// URL is the WebSocket URL of the server.
	URL string `default:"ws://localhost:8080/ws" validate:"url"`

	// FrameRate is the number of update loop frames per second.
	FrameRate int `default:"60" validate:"gt=0,lte=1000"`

	// CutLineRate is the maximum number of cut line and crop plane
	// updates sent per second.
	CutLineRate float64 `default:"30" validate:"gt=0"`

	// Width is the screen width in pixels.
	Width float32 `default:"1920" validate:"gt=0"`

	// Height is the screen height in pixels.
	Height float32 `default:"1080" validate:"gt=0"`

	// Model is the model loaded at start.
	Model string `default:"cube" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns a new config with all default values.
func Default() *Config {
	c := &Config{}
	errors.Log(defaults.Set(c))
	return c
}

// Validate checks the config values.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Open returns the default config overridden by the given TOML
// (.toml) or YAML (.yaml, .yml) file, and validated.
func Open(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := c.Decode(b, filepath.Ext(filename)); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return c, nil
}

// Decode decodes the given file contents onto the config, keeping
// the current values of missing keys. ext is the file extension
// giving the format. JSON is read as YAML, and TOML is converted to
// YAML first, so that all formats share the same keys and duration
// strings like "500ms".
func (c *Config) Decode(b []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(b, &m); err != nil {
			return err
		}
		yb, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		b = yb
	case ".yaml", ".yml", ".json":
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
