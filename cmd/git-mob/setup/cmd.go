// Package setupcmd implements the `git mob setup` command.
package setupcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/gitmob/cmd/git-mob/shared"
)

// Command implements `git mob setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	global bool
	local  bool
}

// New creates the setup command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Create prepare-commit-msg githook which append Co-authored-by trailers to commit message",
		Example: `  git mob setup
  git mob setup --local`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}
	// Global is the default; the flag stays for older scripts.
	c.cmd.Flags().BoolVarP(&c.global, "global", "g", false, "Set up global prepare-commit-msg githook (deprecated, now default)")
	_ = c.cmd.Flags().MarkHidden("global")
	c.cmd.Flags().BoolVar(&c.local, "local", false,
		"Set up local prepare-commit-msg githook which invokes the global one; only needed for repos which override the local hooks directory")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	installer, err := c.ctx.Installer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if c.local {
		return installer.InstallLocal(cmd.Context())
	}
	return installer.InstallGlobal(cmd.Context())
}
