// Package configcmd implements the `git mob config` command group.
package configcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/gitmob/cmd/git-mob/shared"
	"github.com/go-ports/gitmob/internal/config"
)

// Command implements `git mob config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(newConfigInit(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	path, source, err := c.ctx.ResolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := c.ctx.Config()
	if err != nil {
		return err
	}
	data := map[string]any{
		"git":           cfg.Git,
		"log_level":     cfg.LogLevel,
		"prompt_title":  cfg.PromptTitle,
		"config_path":   path,
		"config_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _, err := ctx.ResolveConfigPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			written, err := config.WriteDefault(path, force)
			if errors.Is(err, config.ErrExists) {
				fmt.Fprintf(out, "Config already exists at %s\n", written)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", written)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}
