// Package gitconfig drives `git config` as a generic key/value database for a
// single scope. It returns raw command results; callers decide what an exit
// code means for their domain.
package gitconfig

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-ports/gitmob/internal/command"
)

// Scope selects which git configuration file a Store reads and writes.
type Scope string

// Supported scopes.
const (
	Global Scope = "--global"
	Local  Scope = "--local"
)

// Exit codes of `git config` that callers interpret.
const (
	ExitCodeSuccess = 0
	// ExitCodeNotFound is returned when the key or section does not exist.
	ExitCodeNotFound = 1
	// ExitCodeInvalidKey is returned when the key name is rejected. git uses
	// the same code as for a missing key.
	ExitCodeInvalidKey = 1
)

// HooksPathKey is the configuration key naming the git hooks directory.
const HooksPathKey = "core.hooksPath"

// FailureError reports an unexpected outcome of a `git config` command.
type FailureError struct {
	ExitCode int
	Signaled bool
}

func (e *FailureError) Error() string {
	if e.Signaled {
		return "Git config command terminated by signal"
	}
	return fmt.Sprintf("Git config command exited with status code: %d", e.ExitCode)
}

// Failure converts a command result into a *FailureError.
func Failure(res command.Result) error {
	return &FailureError{ExitCode: res.ExitCode, Signaled: res.Signaled}
}

// Store issues `git config <scope> ...` commands.
type Store struct {
	executor command.Executor
	git      string
	scope    Scope
}

// New returns a Store running the git binary at git (a name resolved through
// PATH or an absolute path) against scope.
func New(executor command.Executor, git string, scope Scope) *Store {
	if git == "" {
		git = "git"
	}
	return &Store{executor: executor, git: git, scope: scope}
}

// Scope returns the scope the store operates on.
func (s *Store) Scope() Scope { return s.scope }

// GetRegexp lists every `name value` pair whose name matches pattern.
func (s *Store) GetRegexp(ctx context.Context, pattern string) (command.Result, error) {
	return s.run(ctx, "--get-regexp", pattern)
}

// GetAll lists every value of a multi-valued key, one per line.
func (s *Store) GetAll(ctx context.Context, key string) (command.Result, error) {
	return s.run(ctx, "--get-all", key)
}

// Get reads a single-valued key.
func (s *Store) Get(ctx context.Context, key string) (command.Result, error) {
	return s.run(ctx, key)
}

// Set writes a single-valued key, replacing any existing value.
func (s *Store) Set(ctx context.Context, key, value string) (command.Result, error) {
	return s.run(ctx, key, value)
}

// Add appends one more value to a multi-valued key.
func (s *Store) Add(ctx context.Context, key, value string) (command.Result, error) {
	return s.run(ctx, "--add", key, value)
}

// UnsetAll removes every value of key.
func (s *Store) UnsetAll(ctx context.Context, key string) (command.Result, error) {
	return s.run(ctx, "--unset-all", key)
}

// RemoveSection removes a whole section. git fails when it does not exist.
func (s *Store) RemoveSection(ctx context.Context, section string) (command.Result, error) {
	return s.run(ctx, "--remove-section", section)
}

func (s *Store) run(ctx context.Context, args ...string) (command.Result, error) {
	full := append([]string{"config", string(s.scope)}, args...)
	res, err := s.executor.Run(ctx, s.git, full...)
	if err != nil {
		return command.Result{}, fmt.Errorf("git config: %w", err)
	}
	slog.Debug("git config", "args", full, "exit_code", res.ExitCode, "signaled", res.Signaled)
	return res, nil
}
