// Package config handles the git-mob configuration file and its environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable that relocates the config file.
const PathEnv = "GIT_MOB_CONFIG"

// DefaultPromptTitle is the title of the interactive co-author picker.
const DefaultPromptTitle = "Select active co-author(s):"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// Config is the tool configuration. Every field can be overridden from the
// environment.
type Config struct {
	// Git is the git binary used for every config call.
	Git         string `yaml:"git"          env:"GIT_MOB_GIT"`
	LogLevel    string `yaml:"log_level"    env:"GIT_MOB_LOG_LEVEL"`
	PromptTitle string `yaml:"prompt_title" env:"GIT_MOB_PROMPT_TITLE"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Git:         "git",
		LogLevel:    "warn",
		PromptTitle: DefaultPromptTitle,
	}
}

// Load reads the config file at path and applies environment overrides.
// A missing file yields the defaults; keys absent from the file keep them.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		normalized, err := normalizePath(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(normalized) // #nosec G304 -- path is chosen by the user
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", normalized, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if strings.TrimSpace(cfg.Git) == "" {
		cfg.Git = "git"
	}
	if strings.TrimSpace(cfg.PromptTitle) == "" {
		cfg.PromptTitle = DefaultPromptTitle
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ---------------------------------------------------------------------------
// Path resolution
// ---------------------------------------------------------------------------

// DefaultPath returns $GIT_MOB_CONFIG, falling back to
// ~/.config/git-mob/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return normalizePath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-mob", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ErrExists is returned by WriteDefault when the file is already present.
var ErrExists = errors.New("config file already exists")

// Template is the starter file written by WriteDefault. It loads to Default().
const Template = `# git-mob configuration

# git binary used for every config call.
git: git

# debug | info | warn | error
log_level: warn

# Title of the interactive co-author picker.
prompt_title: "Select active co-author(s):"
`

// WriteDefault writes Template to path, creating parent directories. An
// existing file is only replaced when force is set.
//
//revive:disable:flag-parameter
func WriteDefault(path string, force bool) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}
	if !force {
		if _, err := os.Stat(normalized); err == nil {
			return normalized, ErrExists
		}
	}
	if err := os.MkdirAll(filepath.Dir(normalized), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(normalized, []byte(Template), 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return normalized, nil
}

//revive:enable:flag-parameter
