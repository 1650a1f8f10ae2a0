package pipeline

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wis-hub/course-report/internal/domain/course"
	"github.com/wis-hub/course-report/pkg/logger"
)

const testDocument = `# Bootcamp

## Students

| Student | Github |
|---------|--------|
| [Dana Levi](https://github.com/danal) | danal |
| [Omer Katz](https://github.com/omerk) | omerk |

## Schedule

### Assignment (day 1)

Dead-line: 2025.11.01 22:00

### Assignment (day 2)

Dead-line: 2025.11.03 22:00
`

const testFeed = "1\tCLOSED\tDay01 by Dana Levi\t\t2025-11-01T20:00:00Z\n" +
	"2\tCLOSED\tDay01 by Dana Levi\t\t2025-11-02T00:00:00Z\n" +
	"3\tOPEN\tDay02 - Omer Katz\t\t2025-11-03T10:00:00Z\n" +
	"4\tCLOSED\tmystery submission\t\t2025-11-03T11:00:00Z\n"

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func TestBuild(t *testing.T) {
	res := Build(testDocument, testFeed, quietLogger())
	require.NotNil(t, res)

	assert.Equal(t, course.Roster{"Dana Levi", "Omer Katz"}, res.Roster)
	assert.Equal(t, []string{"Day01", "Day02"}, res.Assignments)
	assert.Equal(t, "2025-11-01T22:00:00Z", res.Deadlines["Day01"])
	require.Len(t, res.Events, 4)
	require.Len(t, res.Resolved, 4)

	// duplicate Day01 submissions: both retained, the later one is latest
	rec := res.Submissions.Record("Dana Levi", "Day01")
	require.NotNil(t, rec)
	assert.Len(t, rec.History, 2)
	assert.Equal(t, "2025-11-02T00:00:00Z", rec.Latest.CreatedAt)
	require.NotNil(t, rec.Latest.Delta)
	assert.Equal(t, int64(7200), rec.Latest.Delta.Seconds)
	assert.Equal(t, course.Late, course.StatusOf(rec))

	rec = res.Submissions.Record("Omer Katz", "Day02")
	require.NotNil(t, rec)
	assert.Equal(t, course.OnTime, course.StatusOf(rec))

	// the unresolvable event lands in the UNKNOWN bucket
	require.NotNil(t, res.Submissions.Unknown())
	assert.NotNil(t, res.Submissions.Unknown()[course.UnknownAssignment])
}

func TestBuildNilLogger(t *testing.T) {
	res := Build("", "", nil)
	require.NotNil(t, res)
	assert.Empty(t, res.Roster)
	assert.Empty(t, res.Submissions)
}
