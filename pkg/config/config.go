// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config resolves tool settings from the optional workspace
// configuration file and FUNCBIND_* environment variables. Flags layer on
// top of the result at the command layer, so the effective precedence is
// flag, then environment, then file, then default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/azure/funcbind/internal/binding"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-workspace configuration file, looked up at
// the workspace root.
const FileName = ".funcbind.yaml"

// Environment variables honored by Load. Each overrides the matching file
// member.
const (
	ServicePathEnvVarName             = "FUNCBIND_SERVICE_PATH"
	EndpointEnvVarName                = "FUNCBIND_ENDPOINT"
	MinServiceVersionEnvVarName       = "FUNCBIND_MIN_SERVICE_VERSION"
	ConnectionStringSettingEnvVarName = "FUNCBIND_CONNECTION_STRING_SETTING"
	ExcludeEnvVarName                 = "FUNCBIND_EXCLUDE"
)

type Config struct {
	// ServicePath points at the SQL tools service binary, skipping PATH
	// discovery.
	ServicePath string `yaml:"servicePath"`
	// Endpoint attaches to an already running service over a websocket
	// instead of launching a child process.
	Endpoint string `yaml:"endpoint"`
	// MinServiceVersion rejects service binaries older than this version.
	MinServiceVersion string `yaml:"minServiceVersion"`
	// ConnectionStringSetting is the app setting name offered as the default
	// when prompting for where the connection string lives.
	ConnectionStringSetting string `yaml:"connectionStringSetting"`
	// ExcludePatterns drops matching candidates from the project scan, using
	// .dockerignore style patterns relative to the workspace root.
	ExcludePatterns []string `yaml:"excludePatterns"`
}

func Default() Config {
	return Config{
		ConnectionStringSetting: binding.DefaultConnectionSetting,
	}
}

// Load resolves the configuration for the workspace rooted at root. A
// missing configuration file is not an error; the defaults (with any
// environment overrides) are returned instead.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to environment overrides
	case err != nil:
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if value, has := os.LookupEnv(ServicePathEnvVarName); has {
		c.ServicePath = value
	}

	if value, has := os.LookupEnv(EndpointEnvVarName); has {
		c.Endpoint = value
	}

	if value, has := os.LookupEnv(MinServiceVersionEnvVarName); has {
		c.MinServiceVersion = value
	}

	if value, has := os.LookupEnv(ConnectionStringSettingEnvVarName); has {
		c.ConnectionStringSetting = value
	}

	if value, has := os.LookupEnv(ExcludeEnvVarName); has {
		c.ExcludePatterns = splitPatterns(value)
	}
}

// splitPatterns splits a comma separated pattern list, dropping empty
// entries so a trailing comma is harmless.
func splitPatterns(value string) []string {
	var patterns []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			patterns = append(patterns, part)
		}
	}

	return patterns
}
