package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jamesboyd/powertimer/internal/apperr"
)

const fileName = "powertimer_config.json"

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "powertimer", fileName), nil
}

type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

// formatOf picks the codec from the file extension. Unknown extensions are JSON.
func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	default:
		return formatJSON
	}
}

func encode(f format, c *Config) ([]byte, error) {
	switch f {
	case formatYAML:
		return yaml.Marshal(c)
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(c, "", "    ")
	}
}

func decode(f format, data []byte, c *Config) error {
	switch f {
	case formatYAML:
		return yaml.Unmarshal(data, c)
	case formatTOML:
		_, err := toml.Decode(string(data), c)
		return err
	default:
		return json.Unmarshal(data, c)
	}
}

// Load reads the config at path. Keys missing from the file keep their
// defaults. If the file does not exist the defaults are written to it.
//
// Load always returns a usable record. A non-nil error is an apperr.ConfigIO
// the caller may log; the returned record is then the all-defaults one.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c := Default()
			return c, apperr.New(apperr.ConfigIO, "create config", Save(path, c))
		}
		return Default(), apperr.New(apperr.ConfigIO, "read config", err)
	}

	var c Config
	if err := decode(formatOf(path), data, &c); err != nil {
		return Default(), apperr.New(apperr.ConfigIO, "parse config", err)
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return Default(), apperr.New(apperr.ConfigIO, "validate config", err)
	}
	return &c, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := encode(formatOf(path), c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
