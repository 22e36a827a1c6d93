package helpers

import "strings"

const (
	treeMarker = "/tree/"
	srcMarker  = "/src/"
)

// ResolveBranch picks the branch a badge is requested for. An explicit query value wins,
// then the branch found in a repository browser Referer. Nil means the run has no branch.
func ResolveBranch(query string, referer string) *string {
	if query != "" {
		return &query
	}
	return BranchFromReferer(referer)
}

// BranchFromReferer understands GitHub style ".../tree/<branch>" and Bitbucket style
// ".../src/<branch>/" links.
func BranchFromReferer(referer string) *string {
	if _, branch, found := strings.Cut(referer, treeMarker); found {
		return nonEmpty(branch)
	}
	if _, branch, found := strings.Cut(referer, srcMarker); found {
		return nonEmpty(strings.TrimSuffix(branch, "/"))
	}
	return nil
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
