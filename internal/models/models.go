// Package models defines the value types shared by the repositories, the
// session orchestrator and the CLI.
package models

import "fmt"

// TrailerPrefix starts every co-author trailer line in a commit message.
const TrailerPrefix = "Co-authored-by: "

// TeamMember is a collaborator stored under a short key (usually initials).
type TeamMember struct {
	Key   string
	Name  string
	Email string
}

// Coauthor renders the member the way it is stored and appended to commits:
// "Name <email>".
func (m TeamMember) Coauthor() string {
	return FormatCoauthor(m.Name, m.Email)
}

// FormatCoauthor renders "name <email>".
func FormatCoauthor(name, email string) string {
	return fmt.Sprintf("%s <%s>", name, email)
}

// Trailer renders a Co-authored-by trailer for coauthor.
func Trailer(coauthor string) string {
	return TrailerPrefix + coauthor
}

// Trailers renders one trailer per coauthor, preserving order.
func Trailers(coauthors []string) []string {
	out := make([]string, 0, len(coauthors))
	for _, co := range coauthors {
		out = append(out, Trailer(co))
	}
	return out
}
