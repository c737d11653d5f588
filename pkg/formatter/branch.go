package formatter

import "strings"

// MainBranch is returned when no DNIS prefix matches.
const MainBranch = "main"

var branchPrefixes = []struct {
	prefix string
	name   string
}{
	{"505", "New Mexico"},
	{"272", "Pennsylvania"},
	{"212", "New York"},
	{"213", "Los Angeles"},
	{"312", "Chicago"},
}

// BranchFor maps the dialed number to a branch by its raw prefix. The number
// is not normalized: "+15051234567" and "(505) 123-4567" go to the main branch.
func BranchFor(dnis string) string {
	for _, b := range branchPrefixes {
		if strings.HasPrefix(dnis, b.prefix) {
			return b.name
		}
	}
	return MainBranch
}
