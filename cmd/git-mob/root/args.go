package rootcmd

import "strings"

// Number of values taken by --add at the top level (NAME EMAIL) and after the
// team-member command (KEY NAME EMAIL).
const (
	rootAddArity       = 2
	teamMemberAddArity = 3
)

// ExpandMultiValueFlags rewrites "--add A B" (and "-a A B") into repeated
// single-value flags ("--add=A --add=B") so cobra can collect them into a
// string array. Arguments after "--" are left untouched.
func ExpandMultiValueFlags(args []string) []string {
	out := make([]string, 0, len(args))
	arity := rootAddArity

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case arg == "team-member" || arg == "coauthor":
			arity = teamMemberAddArity
			out = append(out, arg)
		case arg == "--add" || arg == "-a":
			taken := 0
			for taken < arity && i+1 < len(args) && !isFlag(args[i+1]) {
				i++
				taken++
				out = append(out, "--add="+args[i])
			}
			if taken == 0 {
				out = append(out, arg)
			}
		default:
			out = append(out, arg)
		}
	}
	return out
}

func isFlag(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}
