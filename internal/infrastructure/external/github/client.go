// Package github implements the GitHub client for the course report: the
// raw-content fetch for the course README and the issues listing that
// backs the submission feed. Network retrieval lives entirely here; the
// report pipeline itself performs no I/O.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/wis-hub/course-report/pkg/logger"
	"github.com/wis-hub/course-report/pkg/retry"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultRawBaseURL = "https://raw.githubusercontent.com"
	defaultUserAgent  = "course-report"

	issuesPerPage = 100
)

// nextLinkRe extracts the rel="next" target from a Link header, e.g.
// <https://api.github.com/...&page=2>; rel="next", <...>; rel="last".
var nextLinkRe = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="next"`)

// ClientConfig contains configuration for the GitHub client.
type ClientConfig struct {
	// APIBaseURL is the GitHub REST API base URL.
	APIBaseURL string

	// RawBaseURL is the raw-content base URL.
	RawBaseURL string

	// Token is an optional bearer token; unauthenticated requests work but
	// hit a much lower rate limit.
	Token string

	// UserAgent is sent on every request; GitHub requires one.
	UserAgent string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Retry controls backoff behavior for transient failures.
	Retry retry.Config

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL: defaultAPIBaseURL,
		RawBaseURL: defaultRawBaseURL,
		UserAgent:  defaultUserAgent,
		Timeout:    30 * time.Second,
		Retry:      retry.DefaultConfig(),
	}
}

// Client talks to GitHub.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	log        *logger.Logger
}

// NewClient creates a new GitHub client.
func NewClient(config ClientConfig) *Client {
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultAPIBaseURL
	}
	if config.RawBaseURL == "" {
		config.RawBaseURL = defaultRawBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	log := config.Logger
	if log == nil {
		log = logger.Default()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		retrier:    retry.New(config.Retry),
		log:        log.With(logger.Component("github")),
	}
}

// FetchReadme fetches the raw README.md of a repository branch.
func (c *Client) FetchReadme(ctx context.Context, owner, repo, branch string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/README.md", c.config.RawBaseURL, owner, repo, branch)
	return c.FetchText(ctx, url)
}

// FetchText fetches a raw text document.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	var body []byte
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		b, _, err := c.get(ctx, url, "")
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	return string(body), nil
}

// ListIssues fetches every issue of a repository in all states, following
// Link-header pagination and excluding pull requests.
func (c *Client) ListIssues(ctx context.Context, owner, repo string) ([]IssueDTO, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=all&per_page=%d&page=1",
		c.config.APIBaseURL, owner, repo, issuesPerPage)

	var issues []IssueDTO
	pages := 0
	for url != "" {
		var body []byte
		var link string
		err := c.retrier.Do(ctx, func(ctx context.Context) error {
			b, l, err := c.get(ctx, url, "application/vnd.github+json")
			if err != nil {
				return err
			}
			body, link = b, l
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list issues %s/%s: %w", owner, repo, err)
		}

		var page []IssueDTO
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("list issues %s/%s: parse page: %w", owner, repo, err)
		}
		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, issue)
		}

		pages++
		url = nextLink(link)
	}

	c.log.Info("issues fetched",
		logger.Repo(owner+"/"+repo),
		logger.Count("issues", len(issues)),
		logger.Count("pages", pages))
	return issues, nil
}

// get performs a single request and returns the body and the Link header.
// HTTP 5xx and 429 surface as retryable errors, other non-2xx statuses as
// permanent ones.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", retry.Permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, resp.Header.Get("Link"), nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, "", fmt.Errorf("status %d: %s", resp.StatusCode, apiMessage(body))
	default:
		return nil, "", retry.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, apiMessage(body)))
	}
}

func apiMessage(body []byte) string {
	var apiErr apiErrorDTO
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// nextLink extracts the rel="next" URL from a Link header, or "".
func nextLink(link string) string {
	if link == "" {
		return ""
	}
	m := nextLinkRe.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}
