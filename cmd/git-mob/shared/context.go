// Package shared holds the context passed to all CLI commands.
package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/go-ports/gitmob/internal/command"
	"github.com/go-ports/gitmob/internal/config"
	"github.com/go-ports/gitmob/internal/gitconfig"
	"github.com/go-ports/gitmob/internal/mob"
	"github.com/go-ports/gitmob/internal/prompt"
	"github.com/go-ports/gitmob/internal/repository"
	"github.com/go-ports/gitmob/internal/setup"
)

// Context carries global CLI state (flags set on the root command) and the
// dependencies every command is built from. Nil dependencies fall back to the
// production implementations.
type Context struct {
	// ConfigPath overrides the config file location.
	// When empty, resolution falls through to GIT_MOB_CONFIG env var → ~/.config/git-mob/config.yaml.
	ConfigPath string
	// Verbose forces debug logging.
	Verbose bool

	Executor command.Executor
	Selector prompt.Selector
	HomeDir  func() (string, error)

	cfg *config.Config
}

// ResolveConfigPath returns the config file in effect and where it came from:
// "flag" or "default".
func (c *Context) ResolveConfigPath() (path, source string, err error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, "flag", nil
	}
	path, err = config.DefaultPath()
	if err != nil {
		return "", "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, "default", nil
}

// Config loads the configuration once per invocation.
func (c *Context) Config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path, _, err := c.ResolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *Context) executor() command.Executor {
	if c.Executor == nil {
		c.Executor = command.NewRealExecutor()
	}
	return c.Executor
}

// Store returns a git config store for scope using the configured git binary.
func (c *Context) Store(scope gitconfig.Scope) (*gitconfig.Store, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	return gitconfig.New(c.executor(), cfg.Git, scope), nil
}

// Service builds the session orchestrator over the global store.
func (c *Context) Service() (*mob.Service, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	store, err := c.Store(gitconfig.Global)
	if err != nil {
		return nil, err
	}
	selector := c.Selector
	if selector == nil {
		selector = prompt.NewMultiSelect()
	}
	svc := mob.New(repository.NewTeamMemberRepo(store), repository.NewMobSessionRepo(store), selector)
	svc.PromptTitle = cfg.PromptTitle
	return svc, nil
}

// Installer builds the hook installer reporting to out.
func (c *Context) Installer(out io.Writer) (*setup.Installer, error) {
	global, err := c.Store(gitconfig.Global)
	if err != nil {
		return nil, err
	}
	local, err := c.Store(gitconfig.Local)
	if err != nil {
		return nil, err
	}
	homeDir := c.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	return &setup.Installer{Global: global, Local: local, HomeDir: homeDir, Out: out}, nil
}
