package github

// IssueDTO mirrors the subset of the GitHub issues payload the report
// needs. The issues endpoint also returns pull requests; those carry a
// pull_request object and are filtered out.
type IssueDTO struct {
	Number      int             `json:"number"`
	State       string          `json:"state"`
	Title       string          `json:"title"`
	CreatedAt   string          `json:"created_at"`
	PullRequest *PullRequestRef `json:"pull_request,omitempty"`
}

// PullRequestRef marks an issues-endpoint item as a pull request.
type PullRequestRef struct {
	URL string `json:"url"`
}

// IsPullRequest reports whether the item is a pull request in disguise.
func (i IssueDTO) IsPullRequest() bool {
	return i.PullRequest != nil
}

// apiErrorDTO is GitHub's error envelope.
type apiErrorDTO struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
