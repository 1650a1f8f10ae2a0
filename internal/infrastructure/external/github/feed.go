package github

import (
	"fmt"
	"strings"
)

// BuildFeed renders issues as the tab-delimited submission feed consumed
// by the normalizer:
//
//	number<TAB>STATE<TAB>title<TAB><TAB>created_at
//
// State is upper-cased; the empty fourth field keeps the shape of the
// historical subjects.txt export, with the timestamp always last.
func BuildFeed(issues []IssueDTO) string {
	if len(issues) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&sb, "%d\t%s\t%s\t\t%s\n",
			issue.Number,
			strings.ToUpper(issue.State),
			issue.Title,
			issue.CreatedAt)
	}
	return sb.String()
}
