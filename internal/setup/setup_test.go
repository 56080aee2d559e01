package setup_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gitmob/internal/command"
	"github.com/go-ports/gitmob/internal/gitconfig"
	"github.com/go-ports/gitmob/internal/setup"
)

var (
	getGlobalHooksPath = []string{"config", "--global", "core.hooksPath"}
	getLocalHooksPath  = []string{"config", "--local", "core.hooksPath"}
)

// newInstaller returns an installer rooted at home whose git calls are served
// by m.
func newInstaller(home string, m *command.MockExecutor) (*setup.Installer, *bytes.Buffer) {
	var out bytes.Buffer
	return &setup.Installer{
		Global:  gitconfig.New(m, "git", gitconfig.Global),
		Local:   gitconfig.New(m, "git", gitconfig.Local),
		HomeDir: func() (string, error) { return home, nil },
		Out:     &out,
	}, &out
}

func assertHook(c *qt.C, path, wantFragment string) {
	c.Helper()
	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, wantFragment)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		c.Assert(err, qt.IsNil)
		c.Assert(info.Mode().Perm(), qt.Equals, os.FileMode(0o755))
	}
}

// ---------------------------------------------------------------------------
// InstallGlobal
// ---------------------------------------------------------------------------

func TestInstallGlobal_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("hooks dir not set", func(c *qt.C) {
		home := t.TempDir()
		hooksDir := filepath.Join(home, ".git", "hooks")
		hookPath := filepath.Join(hooksDir, "prepare-commit-msg")

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{ExitCode: 1})
		m.AddExactMatch("git", []string{"config", "--global", "core.hooksPath", hooksDir}, command.Result{})
		inst, out := newInstaller(home, m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(out.String(), qt.Equals,
			"Set global githooks directory: "+hooksDir+"\n"+
				"Created new prepare-commit-msg githook: "+hookPath+"\n"+
				"Setup complete\n")
		assertHook(c, hookPath, "git mob --trailers")
		c.Assert(m.Calls(), qt.HasLen, 2)
	})

	c.Run("hooks dir set and exists", func(c *qt.C) {
		hooksDir := t.TempDir()
		hookPath := filepath.Join(hooksDir, "prepare-commit-msg")

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{Stdout: []byte(hooksDir + "\n")})
		inst, out := newInstaller(t.TempDir(), m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(out.String(), qt.Equals,
			"Created new prepare-commit-msg githook: "+hookPath+"\n"+
				"Setup complete\n")
		assertHook(c, hookPath, "git mob --trailers")
	})

	c.Run("hooks dir set but does not exist", func(c *qt.C) {
		hooksDir := filepath.Join(t.TempDir(), "missing", "githooks")
		hookPath := filepath.Join(hooksDir, "prepare-commit-msg")

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{Stdout: []byte(hooksDir + "\n")})
		inst, out := newInstaller(t.TempDir(), m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(out.String(), qt.Equals,
			"Created new prepare-commit-msg githook: "+hookPath+"\n"+
				"Setup complete\n")
		assertHook(c, hookPath, "git mob --trailers")
	})

	c.Run("hooks dir starting with tilde is expanded", func(c *qt.C) {
		home := t.TempDir()
		hookPath := filepath.Join(home, "my", "githooks", "prepare-commit-msg")

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{Stdout: []byte("~/my/githooks\n")})
		inst, out := newInstaller(home, m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(out.String(), qt.Equals,
			"Created new prepare-commit-msg githook: "+hookPath+"\n"+
				"Setup complete\n")
		assertHook(c, hookPath, "git mob --trailers")
	})

	c.Run("redundant path segments are cleaned", func(c *qt.C) {
		root := t.TempDir()
		hookPath := filepath.Join(root, "hooks", "prepare-commit-msg")

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{
			Stdout: []byte(root + string(filepath.Separator) + "x" + string(filepath.Separator) + ".." + string(filepath.Separator) + "hooks\n"),
		})
		inst, out := newInstaller(t.TempDir(), m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(out.String(), qt.Contains, "Created new prepare-commit-msg githook: "+hookPath+"\n")
	})

	c.Run("existing hook is backed up", func(c *qt.C) {
		hooksDir := t.TempDir()
		hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
		backupPath := filepath.Join(hooksDir, "prepare-commit-msg.bak")
		c.Assert(os.WriteFile(hookPath, []byte("#Lorem ipsum"), 0o600), qt.IsNil)

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{Stdout: []byte(hooksDir + "\n")})
		inst, out := newInstaller(t.TempDir(), m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(out.String(), qt.Equals,
			"Backed up existing prepare-commit-msg githook: "+backupPath+"\n"+
				"Created new prepare-commit-msg githook: "+hookPath+"\n"+
				"Setup complete\n")

		backup, err := os.ReadFile(backupPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(backup), qt.Equals, "#Lorem ipsum")
		assertHook(c, hookPath, "git mob --trailers")
	})

	c.Run("second run overwrites the previous backup", func(c *qt.C) {
		hooksDir := t.TempDir()
		hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
		backupPath := filepath.Join(hooksDir, "prepare-commit-msg.bak")
		c.Assert(os.WriteFile(hookPath, []byte("#Lorem ipsum"), 0o600), qt.IsNil)

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{Stdout: []byte(hooksDir + "\n")})
		inst, _ := newInstaller(t.TempDir(), m)

		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)
		c.Assert(inst.InstallGlobal(ctx), qt.IsNil)

		backup, err := os.ReadFile(backupPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(backup), qt.Contains, "git mob --trailers")
		c.Assert(string(backup), qt.Not(qt.Contains), "Lorem ipsum")
	})
}

func TestInstallGlobal_FailurePath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("setting the hooks dir fails before touching the filesystem", func(c *qt.C) {
		home := t.TempDir()
		hooksDir := filepath.Join(home, ".git", "hooks")

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{ExitCode: 1})
		m.AddExactMatch("git", []string{"config", "--global", "core.hooksPath", hooksDir}, command.Result{ExitCode: 255})
		inst, out := newInstaller(home, m)

		err := inst.InstallGlobal(ctx)
		c.Assert(err, qt.ErrorMatches, "Failed to set global githooks directory to "+regexp.QuoteMeta(hooksDir))
		c.Assert(out.String(), qt.Equals, "")

		_, statErr := os.Stat(hooksDir)
		c.Assert(errors.Is(statErr, os.ErrNotExist), qt.IsTrue)
	})

	c.Run("home directory unavailable", func(c *qt.C) {
		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{ExitCode: 1})
		inst, _ := newInstaller("", m)
		inst.HomeDir = func() (string, error) { return "", errors.New("$HOME is not defined") }

		err := inst.InstallGlobal(ctx)
		c.Assert(err, qt.ErrorMatches, "Failed to get home directory: \\$HOME is not defined")
	})

	c.Run("hooks dir path is a file", func(c *qt.C) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		c.Assert(os.WriteFile(file, []byte("x"), 0o600), qt.IsNil)

		m := command.NewMockExecutor()
		m.AddExactMatch("git", getGlobalHooksPath, command.Result{Stdout: []byte(file + "\n")})
		inst, _ := newInstaller(t.TempDir(), m)

		err := inst.InstallGlobal(ctx)
		c.Assert(err, qt.ErrorMatches, "create hooks directory: .*not-a-dir.*")
	})
}

// ---------------------------------------------------------------------------
// InstallLocal
// ---------------------------------------------------------------------------

func TestInstallLocal_HappyPath(t *testing.T) {
	c := qt.New(t)

	hooksDir := filepath.Join(t.TempDir(), ".githooks")
	hookPath := filepath.Join(hooksDir, "prepare-commit-msg")

	m := command.NewMockExecutor()
	m.AddExactMatch("git", getLocalHooksPath, command.Result{Stdout: []byte(hooksDir + "\n")})
	inst, out := newInstaller(t.TempDir(), m)

	c.Assert(inst.InstallLocal(context.Background()), qt.IsNil)
	c.Assert(out.String(), qt.Equals,
		"Created new prepare-commit-msg githook: "+hookPath+"\n"+
			"Setup complete\n")
	assertHook(c, hookPath, "git config --global core.hooksPath")
}

func TestInstallLocal_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("local hooks dir not set", func(c *qt.C) {
		m := command.NewMockExecutor()
		m.AddExactMatch("git", getLocalHooksPath, command.Result{ExitCode: 1})
		inst, out := newInstaller(t.TempDir(), m)

		err := inst.InstallLocal(context.Background())
		c.Assert(err, qt.Equals, setup.ErrLocalHooksDirNotSet)
		c.Assert(err, qt.ErrorMatches, "Local githooks directory is not set")
		c.Assert(out.String(), qt.Equals, "")
		// Never sets core.hooksPath on the caller's behalf.
		c.Assert(m.Calls(), qt.HasLen, 1)
	})

	c.Run("outside a repository", func(c *qt.C) {
		m := command.NewMockExecutor()
		m.AddExactMatch("git", getLocalHooksPath, command.Result{ExitCode: 128})
		inst, _ := newInstaller(t.TempDir(), m)

		c.Assert(inst.InstallLocal(context.Background()), qt.Equals, setup.ErrLocalHooksDirNotSet)
	})
}
