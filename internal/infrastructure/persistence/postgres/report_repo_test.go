package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wis-hub/course-report/internal/domain/course"
)

func TestNewRun(t *testing.T) {
	fetched := time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)
	run := NewRun("acme", "bootcamp", "main", fetched)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "acme", run.RepoOwner)
	assert.Equal(t, "bootcamp", run.RepoName)
	assert.Equal(t, "main", run.Branch)
	assert.Equal(t, fetched, run.FetchedAt)

	// identifiers are unique per run
	assert.NotEqual(t, run.ID, NewRun("acme", "bootcamp", "main", fetched).ID)
}

func TestFlattenSubmissions(t *testing.T) {
	issueID := 7
	deltaSeconds := int64(-7200)

	first := course.TimedEvent{
		ResolvedEvent: course.ResolvedEvent{
			RawEvent: course.RawEvent{
				IssueID:   &issueID,
				Status:    course.StatusClosed,
				Title:     "Day01 by Dana Levi",
				CreatedAt: "2025-11-01T20:00:00Z",
			},
			Student:    "Dana Levi",
			Assignment: "Day01",
			Format:     "Day## by Name",
		},
		Delta: &course.Delta{Seconds: deltaSeconds},
	}
	second := course.TimedEvent{
		ResolvedEvent: course.ResolvedEvent{
			RawEvent: course.RawEvent{
				Status:    course.StatusOpen,
				Title:     "Day01 by Dana Levi (resubmit)",
				CreatedAt: "2025-11-02T00:00:00Z",
			},
			Student:    "Dana Levi",
			Assignment: "Day01",
			Format:     "Day## by Name",
		},
	}

	set := course.SubmissionSet{
		"Dana Levi": {
			"Day01": {Latest: second, History: []course.TimedEvent{first, second}},
		},
	}

	records := FlattenSubmissions(set)
	require.Len(t, records, 2)

	byTitle := make(map[string]ArchivedRecord, len(records))
	for _, r := range records {
		byTitle[r.Title] = r
	}

	orig := byTitle["Day01 by Dana Levi"]
	assert.Equal(t, "Dana Levi", orig.Student)
	assert.Equal(t, "Day01", orig.Assignment)
	require.NotNil(t, orig.IssueID)
	assert.Equal(t, 7, *orig.IssueID)
	assert.Equal(t, "CLOSED", orig.IssueStatus)
	require.NotNil(t, orig.DeltaSeconds)
	assert.Equal(t, deltaSeconds, *orig.DeltaSeconds)
	assert.False(t, orig.IsLatest)

	resub := byTitle["Day01 by Dana Levi (resubmit)"]
	assert.Nil(t, resub.IssueID)
	assert.Nil(t, resub.DeltaSeconds)
	assert.True(t, resub.IsLatest)
}

func TestFlattenSubmissionsEmpty(t *testing.T) {
	assert.Empty(t, FlattenSubmissions(course.SubmissionSet{}))
}
