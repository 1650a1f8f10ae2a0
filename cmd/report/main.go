// Command report builds the course submission report: it fetches the
// course README and the issue feed from GitHub (cache-first when Redis is
// available), runs the reconciliation pipeline, prints the report tables
// to stdout, and archives the run when a database is configured.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wis-hub/course-report/config"
	"github.com/wis-hub/course-report/internal/infrastructure/external/github"
	"github.com/wis-hub/course-report/internal/infrastructure/persistence/postgres"
	rediscache "github.com/wis-hub/course-report/internal/infrastructure/persistence/redis"
	"github.com/wis-hub/course-report/internal/interface/console"
	"github.com/wis-hub/course-report/internal/pipeline"
	"github.com/wis-hub/course-report/pkg/logger"
	"github.com/wis-hub/course-report/pkg/retry"
	"github.com/wis-hub/course-report/pkg/timeutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "course-report: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.App.LogLevel)
	if cfg.App.Debug {
		level = logger.LevelDebug
	}
	log := logger.New(logger.Options{Output: os.Stderr, Level: level})

	ctx := context.Background()

	client := github.NewClient(github.ClientConfig{
		APIBaseURL: cfg.GitHub.APIBaseURL,
		RawBaseURL: cfg.GitHub.RawBaseURL,
		Token:      cfg.GitHub.Token,
		Timeout:    cfg.GitHub.Timeout,
		Retry: retry.Config{
			MaxAttempts:  cfg.GitHub.MaxRetries,
			InitialDelay: cfg.GitHub.RetryBaseDelay,
			MaxDelay:     cfg.GitHub.RetryMaxDelay,
		},
		Logger: log,
	})

	cache := openCache(cfg, log)
	if cache != nil {
		defer cache.Close()
	}

	fetchedAt := time.Now().UTC()

	documentText, err := fetchDocument(ctx, cfg, client, cache)
	if err != nil {
		return err
	}

	feedText, err := fetchFeed(ctx, cfg, client, cache)
	if err != nil {
		return err
	}

	result := pipeline.Build(documentText, feedText, log)

	loc := timeutil.DisplayZone(cfg.App.DisplayTimezone)
	presenter := console.NewPresenter(os.Stdout, loc)
	presenter.PrintReport(cfg.GitHub.RepoSlug(), result)

	if cfg.Database.URL != "" {
		if err := archiveRun(ctx, cfg, result, fetchedAt, log); err != nil {
			return err
		}
	}

	return nil
}

// openCache connects the document cache. A disabled or unreachable Redis
// is not an error; the run just fetches fresh.
func openCache(cfg *config.Config, log *logger.Logger) *rediscache.DocumentCache {
	if cfg.Redis.Disabled {
		return nil
	}

	cache, err := rediscache.NewDocumentCache(rediscache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		TTL:          cfg.Redis.TTL,
	}, log)
	if err != nil {
		log.Warn("document cache unavailable, fetching fresh", logger.Err(err))
		return nil
	}
	return cache
}

func fetchDocument(ctx context.Context, cfg *config.Config, client *github.Client, cache *rediscache.DocumentCache) (string, error) {
	key := fmt.Sprintf("readme:%s@%s", cfg.GitHub.RepoSlug(), cfg.GitHub.Branch)
	if cache != nil {
		if body, ok := cache.Get(ctx, key); ok {
			return body, nil
		}
	}

	body, err := client.FetchReadme(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Branch)
	if err != nil {
		return "", fmt.Errorf("fetch course document: %w", err)
	}

	if cache != nil {
		cache.Set(ctx, key, body)
	}
	return body, nil
}

func fetchFeed(ctx context.Context, cfg *config.Config, client *github.Client, cache *rediscache.DocumentCache) (string, error) {
	key := fmt.Sprintf("issues:%s", cfg.GitHub.RepoSlug())
	if cache != nil {
		if body, ok := cache.Get(ctx, key); ok {
			return body, nil
		}
	}

	issues, err := client.ListIssues(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo)
	if err != nil {
		return "", fmt.Errorf("fetch submission feed: %w", err)
	}
	feed := github.BuildFeed(issues)

	if cache != nil {
		cache.Set(ctx, key, feed)
	}
	return feed, nil
}

func archiveRun(ctx context.Context, cfg *config.Config, result *pipeline.Result, fetchedAt time.Time, log *logger.Logger) error {
	conn, err := postgres.NewConnection(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	defer conn.Close()

	if err := postgres.Migrate(ctx, conn); err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	run := postgres.NewRun(cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Branch, fetchedAt)
	run.StudentCount = len(result.Roster)
	run.AssignmentCount = len(result.Assignments)
	run.EventCount = len(result.Events)

	repo := postgres.NewReportRepository(conn)

	if prev, err := repo.LatestRun(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo); err == nil {
		log.Info("previous archived run",
			logger.RunID(prev.ID),
			logger.Count("events_then", prev.EventCount),
			logger.Count("events_now", run.EventCount))
	}

	records := postgres.FlattenSubmissions(result.Submissions)
	if err := repo.SaveRun(ctx, run, records); err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	log.Info("run archived",
		logger.RunID(run.ID),
		logger.Count("records", len(records)))
	return nil
}
