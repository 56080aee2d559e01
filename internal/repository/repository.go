// Package repository maps team-member and mob-session operations onto the
// git configuration store and turns `git config` exit codes into domain
// results.
package repository

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
)

// Configuration sections and keys. Team members live under "coauthors" for
// compatibility with existing git configs.
const (
	TeamMemberSection  = "coauthors"
	MobSessionSection  = "coauthors-mob"
	MobSessionEntryKey = "entry"
)

// TeamMemberRepo stores collaborators by key.
type TeamMemberRepo interface {
	// List returns every stored member. With showKeys each line is
	// "<key> <Name> <email>", otherwise "<Name> <email>".
	List(ctx context.Context, showKeys bool) ([]string, error)
	// Get returns the stored value of key; found is false when key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Remove deletes key. It does not distinguish a missing key from other
	// failures; callers check with Get first.
	Remove(ctx context.Context, key string) error
	// Add stores value under key, overwriting any previous value.
	Add(ctx context.Context, key, value string) error
}

// MobSessionRepo stores the ordered list of active co-authors.
type MobSessionRepo interface {
	List(ctx context.Context) ([]string, error)
	// Add appends coauthor. Duplicates are kept.
	Add(ctx context.Context, coauthor string) error
	// Clear empties the session. Safe to call on an empty session.
	Clear(ctx context.Context) error
}

// InvalidKeyError is returned when git rejects a team member key.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("Invalid key: %s", e.Key)
}

// MalformedEntryError is returned when a listed entry cannot be split into
// key and value.
type MalformedEntryError struct {
	Line string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("Failed to split string: '%s'", e.Line)
}

// lines splits command output into lines without the trailing newline.
func lines(out []byte) []string {
	var result []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		result = append(result, sc.Text())
	}
	return result
}
