package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ports/gitmob/internal/gitconfig"
)

// GitConfigTeamMemberRepo keeps team members as `coauthors.<key>` entries.
type GitConfigTeamMemberRepo struct {
	store *gitconfig.Store
}

// NewTeamMemberRepo returns a TeamMemberRepo backed by store.
func NewTeamMemberRepo(store *gitconfig.Store) *GitConfigTeamMemberRepo {
	return &GitConfigTeamMemberRepo{store: store}
}

var _ TeamMemberRepo = (*GitConfigTeamMemberRepo)(nil)

// List runs `git config --get-regexp ^coauthors\.`; no match yields an empty
// list.
//
//revive:disable:flag-parameter
func (r *GitConfigTeamMemberRepo) List(ctx context.Context, showKeys bool) ([]string, error) {
	res, err := r.store.GetRegexp(ctx, fmt.Sprintf("^%s\\.", TeamMemberSection))
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	switch {
	case res.Success():
	case !res.Signaled && res.ExitCode == gitconfig.ExitCodeNotFound:
		return []string{}, nil
	default:
		return nil, gitconfig.Failure(res)
	}

	delimiter := " "
	if showKeys {
		delimiter = TeamMemberSection + "."
	}
	out := lines(res.Stdout)
	members := make([]string, 0, len(out))
	for _, line := range out {
		_, member, ok := strings.Cut(line, delimiter)
		if !ok {
			return nil, &MalformedEntryError{Line: line}
		}
		members = append(members, member)
	}
	return members, nil
}

//revive:enable:flag-parameter

func (r *GitConfigTeamMemberRepo) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := r.store.Get(ctx, r.fullKey(key))
	if err != nil {
		return "", false, fmt.Errorf("get team member %q: %w", key, err)
	}

	switch {
	case res.Success():
		return strings.TrimSpace(string(res.Stdout)), true, nil
	case !res.Signaled && res.ExitCode == gitconfig.ExitCodeNotFound:
		return "", false, nil
	default:
		return "", false, gitconfig.Failure(res)
	}
}

func (r *GitConfigTeamMemberRepo) Remove(ctx context.Context, key string) error {
	res, err := r.store.UnsetAll(ctx, r.fullKey(key))
	if err != nil {
		return fmt.Errorf("remove team member %q: %w", key, err)
	}
	if !res.Success() {
		return gitconfig.Failure(res)
	}
	return nil
}

func (r *GitConfigTeamMemberRepo) Add(ctx context.Context, key, value string) error {
	res, err := r.store.Set(ctx, r.fullKey(key), value)
	if err != nil {
		return fmt.Errorf("add team member %q: %w", key, err)
	}

	switch {
	case res.Success():
		return nil
	case !res.Signaled && res.ExitCode == gitconfig.ExitCodeInvalidKey:
		return &InvalidKeyError{Key: key}
	default:
		return gitconfig.Failure(res)
	}
}

func (r *GitConfigTeamMemberRepo) fullKey(key string) string {
	return TeamMemberSection + "." + key
}
