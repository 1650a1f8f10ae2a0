package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wis-hub/course-report/pkg/logger"
	"github.com/wis-hub/course-report/pkg/retry"
)

func testClient(apiURL, rawURL string) *Client {
	cfg := DefaultClientConfig()
	cfg.APIBaseURL = apiURL
	cfg.RawBaseURL = rawURL
	cfg.Timeout = 5 * time.Second
	cfg.Retry = retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
	cfg.Logger = logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
	return NewClient(cfg)
}

func TestFetchReadme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/bootcamp/main/README.md", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, "# Bootcamp\n")
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	body, err := c.FetchReadme(context.Background(), "acme", "bootcamp", "main")
	require.NoError(t, err)
	assert.Equal(t, "# Bootcamp\n", body)
}

func TestFetchTextRetriesTransientErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	body, err := c.FetchText(context.Background(), srv.URL+"/doc.md")
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, 3, calls)
}

func TestFetchTextNotFoundIsPermanent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	_, err := c.FetchText(context.Background(), srv.URL+"/missing.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
	// 404 must not be retried
	assert.Equal(t, 1, calls)
}

func TestListIssuesPaginationAndPRFilter(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/bootcamp/issues", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/bootcamp/issues?state=all&page=2>; rel="next", <%s/repos/acme/bootcamp/issues?state=all&page=2>; rel="last"`, srv.URL, srv.URL))
			fmt.Fprint(w, `[
				{"number": 1, "state": "closed", "title": "Day01 by Dana Levi", "created_at": "2025-11-01T20:00:00Z"},
				{"number": 2, "state": "open", "title": "fix typo", "created_at": "2025-11-01T21:00:00Z", "pull_request": {"url": "x"}}
			]`)
		case "2":
			fmt.Fprint(w, `[
				{"number": 3, "state": "open", "title": "Day02 by Omer Katz", "created_at": "2025-11-03T10:00:00Z"}
			]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	issues, err := c.ListIssues(context.Background(), "acme", "bootcamp")
	require.NoError(t, err)

	// the pull request is filtered out, both pages are merged
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Number)
	assert.Equal(t, 3, issues[1].Number)
}

func TestListIssuesSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sekret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	cfg := DefaultClientConfig()
	cfg.APIBaseURL = srv.URL
	cfg.Token = "sekret"
	cfg.Logger = logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
	c := NewClient(cfg)

	issues, err := c.ListIssues(context.Background(), "acme", "bootcamp")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestBuildFeed(t *testing.T) {
	issues := []IssueDTO{
		{Number: 1, State: "closed", Title: "Day01 by Dana Levi", CreatedAt: "2025-11-01T20:00:00Z"},
		{Number: 2, State: "open", Title: "Day02 - Omer Katz", CreatedAt: "2025-11-03T10:00:00Z"},
	}

	feed := BuildFeed(issues)
	want := "1\tCLOSED\tDay01 by Dana Levi\t\t2025-11-01T20:00:00Z\n" +
		"2\tOPEN\tDay02 - Omer Katz\t\t2025-11-03T10:00:00Z\n"
	assert.Equal(t, want, feed)

	assert.Equal(t, "", BuildFeed(nil))
}

func TestNextLink(t *testing.T) {
	link := `<https://api.github.com/repos/a/b/issues?page=2>; rel="next", <https://api.github.com/repos/a/b/issues?page=5>; rel="last"`
	assert.Equal(t, "https://api.github.com/repos/a/b/issues?page=2", nextLink(link))
	assert.Equal(t, "", nextLink(`<https://api.github.com/x>; rel="last"`))
	assert.Equal(t, "", nextLink(""))
}
