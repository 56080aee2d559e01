// Package mob implements the session orchestrator: it combines the team
// member and mob session repositories with the interactive selector to set,
// list and clear the active co-authors, and to render commit trailers.
package mob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-ports/gitmob/internal/models"
	"github.com/go-ports/gitmob/internal/prompt"
	"github.com/go-ports/gitmob/internal/repository"
)

// DefaultPromptTitle is shown above the interactive co-author picker.
const DefaultPromptTitle = "Select active co-author(s):"

// ErrNoTeamMembers is returned when an interactive selection is requested but
// nobody has been added yet.
var ErrNoTeamMembers = errors.New("No team member(s) found. At least one team member must be added.") //nolint:staticcheck // user-facing message

// NotFoundError reports a team member key with no stored value.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No team member found with key: %s", e.Key)
}

// Coauthor is an ad-hoc co-author that is not stored as a team member.
type Coauthor struct {
	Name  string
	Email string
}

// Request selects the session steps to run. Every step that is set runs, in
// field order.
type Request struct {
	Clear    bool
	List     bool
	Trailers bool
	// With replaces the session. Without WithKeys the user picks
	// interactively.
	With     bool
	WithKeys []string
	Add      *Coauthor
}

// TeamMemberRequest selects the team member steps to run, in field order.
type TeamMemberRequest struct {
	Delete string
	List   bool
	Add    *models.TeamMember
}

// Service runs session and team member requests. It holds no state of its own.
type Service struct {
	Members     repository.TeamMemberRepo
	Session     repository.MobSessionRepo
	Selector    prompt.Selector
	PromptTitle string
}

// New returns a Service using the default prompt title.
func New(members repository.TeamMemberRepo, session repository.MobSessionRepo, selector prompt.Selector) *Service {
	return &Service{
		Members:     members,
		Session:     session,
		Selector:    selector,
		PromptTitle: DefaultPromptTitle,
	}
}

// Apply runs the steps of req against the session, writing output to out.
// The first error aborts the remaining steps.
func (s *Service) Apply(ctx context.Context, req Request, out io.Writer) error {
	if req.Clear {
		if err := s.Session.Clear(ctx); err != nil {
			return err
		}
	}
	if req.List {
		if err := s.list(ctx, out, false); err != nil {
			return err
		}
	}
	if req.Trailers {
		if err := s.list(ctx, out, true); err != nil {
			return err
		}
	}
	if req.With {
		var err error
		if len(req.WithKeys) == 0 {
			err = s.withSelection(ctx, out)
		} else {
			err = s.withKeys(ctx, req.WithKeys, out)
		}
		if err != nil {
			return err
		}
	}
	if req.Add != nil {
		coauthor := models.FormatCoauthor(req.Add.Name, req.Add.Email)
		if err := s.Session.Add(ctx, coauthor); err != nil {
			return err
		}
		fmt.Fprintln(out, coauthor)
	}
	return nil
}

//revive:disable:flag-parameter
func (s *Service) list(ctx context.Context, out io.Writer, trailers bool) error {
	coauthors, err := s.Session.List(ctx)
	if err != nil {
		return err
	}
	if len(coauthors) == 0 {
		return nil
	}
	if trailers {
		coauthors = models.Trailers(coauthors)
	}
	fmt.Fprintln(out, strings.Join(coauthors, "\n"))
	return nil
}

//revive:enable:flag-parameter

func (s *Service) withSelection(ctx context.Context, out io.Writer) error {
	members, err := s.Members.List(ctx, false)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return ErrNoTeamMembers
	}

	selected, err := s.Selector.Select(ctx, s.promptTitle(), members)
	if errors.Is(err, prompt.ErrCanceled) {
		slog.Debug("co-author selection canceled; session left unchanged")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Session.Clear(ctx); err != nil {
		return err
	}
	for _, coauthor := range selected {
		if err := s.Session.Add(ctx, coauthor); err != nil {
			return err
		}
	}
	if len(selected) == 0 {
		fmt.Fprintln(out, "Going solo!")
	}
	return nil
}

// withKeys replaces the session with the members stored under keys. It is not
// transactional: a missing key stops the loop and members added for earlier
// keys stay in the session.
func (s *Service) withKeys(ctx context.Context, keys []string, out io.Writer) error {
	if err := s.Session.Clear(ctx); err != nil {
		return err
	}

	coauthors := make([]string, 0, len(keys))
	for _, key := range keys {
		coauthor, found, err := s.Members.Get(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Key: key}
		}
		if err := s.Session.Add(ctx, coauthor); err != nil {
			return err
		}
		coauthors = append(coauthors, coauthor)
	}

	fmt.Fprintln(out, strings.Join(coauthors, "\n"))
	return nil
}

func (s *Service) promptTitle() string {
	if s.PromptTitle == "" {
		return DefaultPromptTitle
	}
	return s.PromptTitle
}

// ApplyTeamMember runs the steps of req against the team member store.
func (s *Service) ApplyTeamMember(ctx context.Context, req TeamMemberRequest, out io.Writer) error {
	if req.Delete != "" {
		_, found, err := s.Members.Get(ctx, req.Delete)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Key: req.Delete}
		}
		if err := s.Members.Remove(ctx, req.Delete); err != nil {
			return err
		}
	}
	if req.List {
		members, err := s.Members.List(ctx, true)
		if err != nil {
			return err
		}
		if len(members) > 0 {
			fmt.Fprintln(out, strings.Join(members, "\n"))
		}
	}
	if req.Add != nil {
		coauthor := req.Add.Coauthor()
		if err := s.Members.Add(ctx, req.Add.Key, coauthor); err != nil {
			return err
		}
		fmt.Fprintln(out, coauthor)
	}
	return nil
}
