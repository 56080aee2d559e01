// Package command abstracts running external programs so the git-backed
// repositories can be tested without a real git binary. Production code uses
// RealExecutor; tests register canned results on a MockExecutor.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"sync"
)

// Result is the raw outcome of a finished process.
// A non-zero exit is reported here rather than as an error.
type Result struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is the process exit code. Meaningless when Signaled is true.
	ExitCode int
	// Signaled reports that the process was terminated by a signal and has no
	// exit code.
	Signaled bool
}

// Success reports whether the process exited with code 0.
func (r Result) Success() bool { return !r.Signaled && r.ExitCode == 0 }

// Executor runs a program to completion.
type Executor interface {
	// Run executes name with args. The error is non-nil only when the program
	// could not be run at all (missing binary, cancelled context before start).
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RealExecutor executes commands using os/exec.
type RealExecutor struct{}

// NewRealExecutor returns a new RealExecutor.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// Run executes a command and returns its captured output and exit status.
func (e *RealExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := Result{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Result{}, fmt.Errorf("run %s: %w", name, err)
	}
	res.ExitCode = exitErr.ExitCode()
	if res.ExitCode == -1 {
		res.Signaled = true
	}
	return res, nil
}

// ---------------------------------------------------------------------------
// Mock executor
// ---------------------------------------------------------------------------

// CommandMatcher is a function that determines if a command matches.
type CommandMatcher func(name string, args []string) bool

// MockRule defines a matching rule and its response.
type MockRule struct {
	Match    CommandMatcher
	Response Result
	Err      error
}

// MockCall records a command invocation for verification.
type MockCall struct {
	Name string
	Args []string
}

// String renders the call the way it would be typed in a shell.
func (c MockCall) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockExecutor returns pre-recorded results for commands.
// Rules are matched in registration order; unmatched commands fail.
type MockExecutor struct {
	mu    sync.Mutex
	rules []MockRule
	calls []MockCall
}

// NewMockExecutor creates an empty MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// AddRule adds a matching rule with its response.
func (e *MockExecutor) AddRule(match CommandMatcher, response Result, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, MockRule{Match: match, Response: response, Err: err})
}

// AddExactMatch adds a rule that matches a specific command exactly.
func (e *MockExecutor) AddExactMatch(name string, args []string, response Result) {
	e.AddRule(func(n string, a []string) bool {
		return n == name && slices.Equal(a, args)
	}, response, nil)
}

// AddPrefixMatch adds a rule that matches commands starting with specific args.
func (e *MockExecutor) AddPrefixMatch(name string, prefixArgs []string, response Result) {
	e.AddRule(func(n string, a []string) bool {
		return n == name && len(a) >= len(prefixArgs) && slices.Equal(a[:len(prefixArgs)], prefixArgs)
	}, response, nil)
}

// Calls returns all recorded command invocations.
func (e *MockExecutor) Calls() []MockCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	calls := make([]MockCall, len(e.calls))
	copy(calls, e.calls)
	return calls
}

// Run returns the response of the first matching rule.
func (e *MockExecutor) Run(_ context.Context, name string, args ...string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	call := MockCall{Name: name, Args: append([]string(nil), args...)}
	e.calls = append(e.calls, call)

	for _, rule := range e.rules {
		if rule.Match(name, args) {
			return rule.Response, rule.Err
		}
	}
	return Result{}, fmt.Errorf("mock executor: no rule for %q", call.String())
}
