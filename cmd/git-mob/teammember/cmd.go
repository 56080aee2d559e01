// Package teammembercmd implements the `git mob team-member` command.
package teammembercmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/go-ports/gitmob/cmd/git-mob/shared"
	"github.com/go-ports/gitmob/internal/mob"
	"github.com/go-ports/gitmob/internal/models"
)

// Command implements `git mob team-member`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	add  []string
	del  string
	list bool
}

// New creates the team-member command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "team-member",
		Aliases: []string{"coauthor"},
		Short:   "Add/delete/list team member(s) from team member repository",
		Long: `Add/delete/list team member(s) from team member repository

User must store team member(s) to team member repository by using keys
(usually initials) before starting pair/mob programming session(s).`,
		Example: `  git mob team-member --add lm "Leo Messi" leo.messi@example.com
  git mob team-member --delete lm
  git mob team-member --list`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}
	c.cmd.Flags().StringArrayVarP(&c.add, "add", "a", nil, "Adds team member: --add KEY NAME EMAIL")
	c.cmd.Flags().StringVarP(&c.del, "delete", "d", "", "Remove team member by KEY")
	c.cmd.Flags().BoolVarP(&c.list, "list", "l", false, "Lists team member(s) with keys")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	if len(c.add) == 0 && c.del == "" && !c.list {
		return cmd.Help()
	}

	req := mob.TeamMemberRequest{Delete: c.del, List: c.list}
	if len(c.add) > 0 {
		if len(c.add) != 3 {
			return errors.New("--add requires exactly 3 values: KEY NAME EMAIL")
		}
		req.Add = &models.TeamMember{Key: c.add[0], Name: c.add[1], Email: c.add[2]}
	}

	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	return svc.ApplyTeamMember(cmd.Context(), req, cmd.OutOrStdout())
}
