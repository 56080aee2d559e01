package repository

import (
	"context"
	"fmt"

	"github.com/go-ports/gitmob/internal/gitconfig"
)

// GitConfigMobRepo keeps the session as repeated `coauthors-mob.entry` values.
type GitConfigMobRepo struct {
	store *gitconfig.Store
}

// NewMobSessionRepo returns a MobSessionRepo backed by store.
func NewMobSessionRepo(store *gitconfig.Store) *GitConfigMobRepo {
	return &GitConfigMobRepo{store: store}
}

var _ MobSessionRepo = (*GitConfigMobRepo)(nil)

const mobEntryKey = MobSessionSection + "." + MobSessionEntryKey

func (r *GitConfigMobRepo) List(ctx context.Context) ([]string, error) {
	res, err := r.store.GetAll(ctx, mobEntryKey)
	if err != nil {
		return nil, fmt.Errorf("list mob session: %w", err)
	}

	switch {
	case res.Success():
		coauthors := lines(res.Stdout)
		if coauthors == nil {
			coauthors = []string{}
		}
		return coauthors, nil
	case !res.Signaled && res.ExitCode == gitconfig.ExitCodeNotFound:
		return []string{}, nil
	default:
		return nil, gitconfig.Failure(res)
	}
}

func (r *GitConfigMobRepo) Add(ctx context.Context, coauthor string) error {
	res, err := r.store.Add(ctx, mobEntryKey, coauthor)
	if err != nil {
		return fmt.Errorf("add to mob session: %w", err)
	}
	if !res.Success() {
		return gitconfig.Failure(res)
	}
	return nil
}

// Clear removes the session section. git fails to remove a section that does
// not exist, so an empty session returns early without touching the store.
func (r *GitConfigMobRepo) Clear(ctx context.Context) error {
	coauthors, err := r.List(ctx)
	if err != nil {
		return err
	}
	if len(coauthors) == 0 {
		return nil
	}

	res, err := r.store.RemoveSection(ctx, MobSessionSection)
	if err != nil {
		return fmt.Errorf("clear mob session: %w", err)
	}
	if !res.Success() {
		return gitconfig.Failure(res)
	}
	return nil
}
