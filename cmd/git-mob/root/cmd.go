// Package rootcmd wires the root cobra.Command for the git-mob CLI binary.
package rootcmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/gitmob/cmd/git-mob/config"
	setupcmd "github.com/go-ports/gitmob/cmd/git-mob/setup"
	"github.com/go-ports/gitmob/cmd/git-mob/shared"
	teammembercmd "github.com/go-ports/gitmob/cmd/git-mob/teammember"
	"github.com/go-ports/gitmob/internal/buildinfo"
	"github.com/go-ports/gitmob/internal/logging"
	"github.com/go-ports/gitmob/internal/mob"
)

const long = `A CLI app which can help users automatically add co-author(s) to git commits
for pair/mob programming.

A user can attribute a git commit to more than one author by adding one or more
Co-authored-by trailers to the commit's message. git-mob stores team members
under short keys and manages the co-authors of the current session.

Usage example:

  git mob team-member --add lm "Leo Messi" leo.messi@example.com
  git mob --with lm`

type flags struct {
	with     bool
	clear    bool
	list     bool
	trailers bool
	add      []string
}

// New creates and returns the root cobra.Command for the git-mob CLI.
func New() *cobra.Command {
	return NewWithContext(&shared.Context{})
}

// NewWithContext creates the root command around ctx, letting callers inject
// the executor, selector and home directory.
func NewWithContext(ctx *shared.Context) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "git-mob [flags] [KEY...]",
		Short:         "Add co-author(s) to git commits for pair/mob programming",
		Long:          long,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initLogging(cmd, ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, ctx, &f, args)
		},
	}
	root.SetVersionTemplate(buildinfo.Summary() + "\n")

	root.PersistentFlags().StringVar(
		&ctx.ConfigPath, "config", "",
		"Path to the config file (default: $GIT_MOB_CONFIG env → ~/.config/git-mob/config.yaml)",
	)
	root.PersistentFlags().BoolVar(&ctx.Verbose, "verbose", false, "Log every git call to stderr")

	root.Flags().BoolVarP(&f.with, "with", "w", false,
		"Sets active co-author(s) for pair/mob programming session; pass KEYs or pick interactively")
	root.Flags().BoolVarP(&f.clear, "clear", "c", false, "Clears mob/pair programming session. Going solo!")
	root.Flags().BoolVarP(&f.list, "list", "l", false, "Lists co-author(s) in current mob/pair programming session")
	root.Flags().BoolVar(&f.trailers, "trailers", false, "Lists Co-authored-by trailers in current mob/pair programming session")
	root.Flags().StringArrayVarP(&f.add, "add", "a", nil,
		"Adds a non-team member to the current session: --add NAME EMAIL")

	root.AddCommand(
		teammembercmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
	)

	return root
}

// initLogging configures slog before any command runs. A config that fails
// to load is reported later by the command that needs it, so that
// "config init --force" can still repair it.
func initLogging(cmd *cobra.Command, ctx *shared.Context) {
	var levelErr error
	level := slog.LevelWarn
	if cfg, err := ctx.Config(); err == nil {
		level, levelErr = logging.ParseLevel(cfg.LogLevel)
	}
	if ctx.Verbose {
		level = slog.LevelDebug
	}
	logging.Init(cmd.ErrOrStderr(), level)
	if levelErr != nil {
		slog.Warn("invalid log_level; using warn", "err", levelErr)
	}
}

func run(cmd *cobra.Command, ctx *shared.Context, f *flags, args []string) error {
	if len(args) > 0 && !f.with {
		return fmt.Errorf("unexpected argument(s) %q: team member keys are only accepted with --with", strings.Join(args, " "))
	}
	if !f.with && !f.clear && !f.list && !f.trailers && len(f.add) == 0 {
		return cmd.Help()
	}

	req := mob.Request{
		Clear:    f.clear,
		List:     f.list,
		Trailers: f.trailers,
		With:     f.with,
		WithKeys: args,
	}
	if len(f.add) > 0 {
		if len(f.add) != rootAddArity {
			return errors.New("--add requires exactly 2 values: NAME EMAIL")
		}
		req.Add = &mob.Coauthor{Name: f.add[0], Email: f.add[1]}
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	return svc.Apply(cmd.Context(), req, cmd.OutOrStdout())
}
