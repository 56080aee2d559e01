// Package prompt asks the user to pick co-authors interactively.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"

	"charm.land/huh/v2"
	"golang.org/x/term"
)

// ErrCanceled is returned when the user aborts the prompt. It is a normal
// outcome: callers leave their state unchanged.
var ErrCanceled = errors.New("selection canceled")

// Selector picks a subset of options.
type Selector interface {
	// Select returns the chosen options in display order, or ErrCanceled.
	// An empty, confirmed selection is not an error.
	Select(ctx context.Context, title string, options []string) ([]string, error)
}

// MultiSelect is a terminal multi-select backed by huh.
type MultiSelect struct {
	// IsTerminal reports whether stdin is attached to a terminal. Defaults to
	// checking os.Stdin.
	IsTerminal func() bool
}

// NewMultiSelect returns a MultiSelect reading from the process terminal.
func NewMultiSelect() *MultiSelect {
	return &MultiSelect{}
}

// Select shows options and blocks until the user confirms or aborts.
func (s *MultiSelect) Select(ctx context.Context, title string, options []string) ([]string, error) {
	if !s.isTerminal() {
		return nil, errors.New("interactive selection requires a terminal; pass team member keys to --with instead")
	}

	var selected []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&selected)

	err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return nil, ErrCanceled
	default:
		return nil, fmt.Errorf("select co-authors: %w", err)
	}
	return ordered(options, selected), nil
}

func (s *MultiSelect) isTerminal() bool {
	if s.IsTerminal != nil {
		return s.IsTerminal()
	}
	return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- file descriptors fit in int
}

// ordered returns the members of selected in the order they appear in options.
func ordered(options, selected []string) []string {
	picked := make(map[string]int, len(selected))
	for _, s := range selected {
		picked[s]++
	}
	out := make([]string, 0, len(selected))
	for _, o := range options {
		if picked[o] > 0 {
			out = append(out, o)
			picked[o]--
		}
	}
	return out
}
