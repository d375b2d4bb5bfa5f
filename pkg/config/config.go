// Package config maps sink names to destination directories. Built-in
// defaults cover the common agent tools; a user-level config.yaml and an
// optional repo-level skillpack.toml layer overrides on top.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SinkCustom is the reserved sink name that always requires an explicit
// --path override.
const SinkCustom = "custom"

type configFile struct {
	Sinks map[string]string `yaml:"sinks"`
}

// repoConfig is the optional repo-level skillpack.toml: repo-scoped sink
// definitions layered over the user configuration.
type repoConfig struct {
	Sinks map[string]string `toml:"sinks"`
}

// Config is the effective sink table.
type Config struct {
	Sinks map[string]string
}

// Detail breaks the sink table down by layer for the config command.
type Detail struct {
	Path      string
	Defaults  map[string]string
	Overrides map[string]string
	RepoSinks map[string]string
	Effective map[string]string
}

// DefaultSinks returns the built-in sink table for the known agent tools.
func DefaultSinks() (map[string]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "missing home dir").WithHint("Set HOME")
	}
	return map[string]string{
		"codex":    filepath.Join(home, ".codex", "skills"),
		"claude":   filepath.Join(home, ".claude", "skills"),
		"copilot":  filepath.Join(home, ".copilot", "skills"),
		"cursor":   filepath.Join(home, ".cursor", "skills"),
		"windsurf": filepath.Join(home, ".windsurf", "skills"),
	}, nil
}

// Load returns the effective sink configuration. repoRoot may be empty when
// no repo context applies.
func Load(p *paths.Paths, repoRoot string) (*Config, error) {
	detail, err := LoadDetail(p, repoRoot)
	if err != nil {
		return nil, err
	}
	return &Config{Sinks: detail.Effective}, nil
}

// LoadDetail returns the sink configuration broken down by layer:
// built-in defaults, user config.yaml overrides, then repo skillpack.toml.
func LoadDetail(p *paths.Paths, repoRoot string) (*Detail, error) {
	defaults, err := DefaultSinks()
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]string)
	configPath := p.ConfigFilePath()
	if content, err := os.ReadFile(configPath); err == nil {
		var parsed configFile
		if err := yaml.Unmarshal(content, &parsed); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file: %s", configPath)
		}
		for name, raw := range parsed.Sinks {
			expanded, err := ExpandPath(raw)
			if err != nil {
				return nil, err
			}
			overrides[name] = expanded
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file: %s", configPath)
	}

	repoSinks := make(map[string]string)
	if repoRoot != "" {
		repoConfigPath := filepath.Join(repoRoot, paths.RepoConfigFileName)
		if content, err := os.ReadFile(repoConfigPath); err == nil {
			var parsed repoConfig
			if err := toml.Unmarshal(content, &parsed); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse repo config: %s", repoConfigPath)
			}
			for name, raw := range parsed.Sinks {
				expanded, err := ExpandPath(raw)
				if err != nil {
					return nil, err
				}
				repoSinks[name] = expanded
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read repo config: %s", repoConfigPath)
		}
	}

	effective := make(map[string]string, len(defaults))
	for name, path := range defaults {
		effective[name] = path
	}
	for name, path := range overrides {
		effective[name] = path
	}
	for name, path := range repoSinks {
		effective[name] = path
	}

	return &Detail{
		Path:      configPath,
		Defaults:  defaults,
		Overrides: overrides,
		RepoSinks: repoSinks,
		Effective: effective,
	}, nil
}

// ResolveSinkPath maps a sink name to its destination directory. An explicit
// override path wins; the custom sink requires one.
func ResolveSinkPath(cfg *Config, sink, overridePath string) (string, error) {
	if overridePath != "" {
		return paths.MakeAbsolute(overridePath)
	}
	if sink == SinkCustom {
		return "", errors.New(errors.ErrSinkUnknown, "custom sink requires --path").
			WithHint("Use --path to set the destination folder")
	}
	if path, ok := cfg.Sinks[sink]; ok {
		return path, nil
	}
	names := SinkNames(cfg)
	return "", errors.Newf(errors.ErrSinkUnknown, "unknown sink: %s", sink).
		WithHint("Available sinks: " + strings.Join(names, ", "))
}

// SinkNames returns the configured sink names, sorted.
func SinkNames(cfg *Config) []string {
	names := make([]string, 0, len(cfg.Sinks))
	for name := range cfg.Sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExpandPath expands a leading ~ and makes the path absolute.
func ExpandPath(raw string) (string, error) {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "missing home dir").WithHint("Set HOME")
		}
		if raw == "~" {
			return home, nil
		}
		return filepath.Join(home, raw[2:]), nil
	}
	return paths.MakeAbsolute(raw)
}
