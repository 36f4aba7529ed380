// Package config holds the settings of the mulisp driver, read from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the home directory when no path is given.
const DefaultFile = ".mulisp.yaml"

type Config struct {
	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	HistoryFile        string   `yaml:"history_file"`
	Prelude            bool     `yaml:"prelude"`
	Load               []string `yaml:"load"`
	Echo               bool     `yaml:"echo"`
}

func Default() Config {
	return Config{
		Prompt:             "> ",
		ContinuationPrompt: ": ",
		HistoryFile:        "~/.mulisp_history",
		Prelude:            true,
		Load:               []string{},
		Echo:               true,
	}
}

// Load reads the config at path over the defaults. An empty path means
// DefaultFile in the home directory, which is allowed to be missing.
func Load(path string) (Config, error) {
	cfg := Default()
	optional := false
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, DefaultFile)
		optional = true
	}
	file, err := os.Open(expandHome(path))
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg.normalize(), nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	c.HistoryFile = expandHome(strings.TrimSpace(c.HistoryFile))
	load := make([]string, 0, len(c.Load))
	for _, p := range c.Load {
		if p = strings.TrimSpace(p); p != "" {
			load = append(load, expandHome(p))
		}
	}
	c.Load = load
	return c
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
