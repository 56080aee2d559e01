// Package setup installs the git-mob prepare-commit-msg hook into the global
// or the repository-local git hooks directory.
package setup

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ports/gitmob/internal/gitconfig"
)

// HookName is the git hook git-mob installs.
const HookName = "prepare-commit-msg"

//go:embed templates/prepare-commit-msg
var globalHook []byte

//go:embed templates/prepare-commit-msg.local
var localHook []byte

// ErrLocalHooksDirNotSet is returned by InstallLocal when the repository does
// not override core.hooksPath.
var ErrLocalHooksDirNotSet = errors.New("Local githooks directory is not set") //nolint:staticcheck // user-facing message

// Installer writes the hook for a scope and reports every step to Out.
type Installer struct {
	Global *gitconfig.Store
	Local  *gitconfig.Store
	// HomeDir resolves the user's home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)
	Out     io.Writer
}

// ---------------------------------------------------------------------------
// Hooks directory resolution
// ---------------------------------------------------------------------------

func (i *Installer) homeDir() (string, error) {
	homeDir := i.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("Failed to get home directory: %w", err) //nolint:staticcheck // user-facing message
	}
	return home, nil
}

// DefaultGlobalHooksDir returns <home>/.git/hooks.
func (i *Installer) DefaultGlobalHooksDir() (string, error) {
	home, err := i.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".git", "hooks"), nil
}

// hooksDir reads core.hooksPath from store. An unset or unreadable value
// reports ok=false.
func (i *Installer) hooksDir(ctx context.Context, store *gitconfig.Store) (dir string, ok bool, err error) {
	res, err := store.Get(ctx, gitconfig.HooksPathKey)
	if err != nil {
		return "", false, err
	}
	value := strings.TrimSpace(string(res.Stdout))
	if !res.Success() || value == "" {
		return "", false, nil
	}
	dir, err = i.expandHome(value)
	if err != nil {
		return "", false, err
	}
	return dir, true, nil
}

// expandHome replaces a leading "~" path element with the home directory and
// cleans the result.
func (i *Installer) expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return filepath.Clean(path), nil
	}
	home, err := i.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

func (i *Installer) setGlobalHooksDir(ctx context.Context, dir string) error {
	res, err := i.Global.Set(ctx, gitconfig.HooksPathKey, dir)
	if err != nil || !res.Success() {
		return fmt.Errorf("Failed to set global githooks directory to %s", dir) //nolint:staticcheck // user-facing message
	}
	fmt.Fprintf(i.Out, "Set global githooks directory: %s\n", dir)
	return nil
}

// ---------------------------------------------------------------------------
// Install
// ---------------------------------------------------------------------------

// InstallGlobal installs the hook in the global hooks directory, configuring
// <home>/.git/hooks as core.hooksPath first when none is set.
func (i *Installer) InstallGlobal(ctx context.Context) error {
	dir, ok, err := i.hooksDir(ctx, i.Global)
	if err != nil {
		return err
	}
	if !ok {
		if dir, err = i.DefaultGlobalHooksDir(); err != nil {
			return err
		}
		if err := i.setGlobalHooksDir(ctx, dir); err != nil {
			return err
		}
	}
	return i.installAt(dir, globalHook)
}

// InstallLocal installs a hook that delegates to the global one into the
// repository's own core.hooksPath. It never sets core.hooksPath itself.
func (i *Installer) InstallLocal(ctx context.Context) error {
	dir, ok, err := i.hooksDir(ctx, i.Local)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLocalHooksDirNotSet
	}
	return i.installAt(dir, localHook)
}

// installAt writes template to dir/prepare-commit-msg. An existing hook is
// renamed to prepare-commit-msg.bak, replacing any older backup.
func (i *Installer) installAt(dir string, template []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	hookPath := filepath.Join(dir, HookName)
	if _, err := os.Lstat(hookPath); err == nil {
		backupPath := hookPath + ".bak"
		if err := os.Rename(hookPath, backupPath); err != nil {
			return fmt.Errorf("back up existing hook: %w", err)
		}
		fmt.Fprintf(i.Out, "Backed up existing %s githook: %s\n", HookName, backupPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspect existing hook: %w", err)
	}

	if err := os.WriteFile(hookPath, template, 0o755); err != nil { // #nosec G306 -- git hooks must be executable
		return fmt.Errorf("write hook: %w", err)
	}
	if err := makeExecutable(hookPath); err != nil {
		return fmt.Errorf("set hook permissions: %w", err)
	}
	fmt.Fprintf(i.Out, "Created new %s githook: %s\n", HookName, hookPath)

	fmt.Fprintln(i.Out, "Setup complete")
	return nil
}
