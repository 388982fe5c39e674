package diag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopMustFollowStart(t *testing.T) {
	sw := NewStopwatch()
	err := sw.Stop("never-started")
	require.Error(t, err)
}

func TestStartThenStopSucceeds(t *testing.T) {
	sw := NewStopwatch()
	sw.Start("x")
	time.Sleep(time.Millisecond)
	require.NoError(t, sw.Stop("x"))

	ms, err := sw.Milliseconds("x")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, 0.0)
}

func TestRestartingDiscardsPriorEnd(t *testing.T) {
	sw := NewStopwatch()
	sw.Start("x")
	require.NoError(t, sw.Stop("x"))

	sw.Start("x") // should erase the prior end time
	_, err := sw.Milliseconds("x")
	require.Error(t, err)
}

func TestDurationAccessorsFailIfIncomplete(t *testing.T) {
	sw := NewStopwatch()
	sw.Start("x")
	_, err := sw.Seconds("x")
	require.Error(t, err)
}

func TestHumanFormatsTiers(t *testing.T) {
	sw := NewStopwatch()
	sw.events["ms"] = interval{start: time.Unix(0, 0), end: time.Unix(0, 0).Add(5 * time.Millisecond), hasEnd: true}
	sw.events["secs"] = interval{start: time.Unix(0, 0), end: time.Unix(0, 0).Add(3500 * time.Millisecond), hasEnd: true}
	sw.events["tensecs"] = interval{start: time.Unix(0, 0), end: time.Unix(0, 0).Add(12 * time.Second), hasEnd: true}
	sw.events["mins"] = interval{start: time.Unix(0, 0), end: time.Unix(0, 0).Add(90 * time.Second), hasEnd: true}

	ms, err := sw.Human("ms")
	require.NoError(t, err)
	assert.Contains(t, ms, "ms")

	secs, err := sw.Human("secs")
	require.NoError(t, err)
	assert.Contains(t, secs, ".")
	assert.True(t, strings.HasSuffix(secs, "s"))

	tensecs, err := sw.Human("tensecs")
	require.NoError(t, err)
	assert.Equal(t, "12.0s", tensecs)

	mins, err := sw.Human("mins")
	require.NoError(t, err)
	assert.Contains(t, mins, "m")
}

func TestResultsOnlyIncludesCompleted(t *testing.T) {
	sw := NewStopwatch()
	sw.Start("done")
	require.NoError(t, sw.Stop("done"))
	sw.Start("pending")

	results := sw.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "done", results[0].Name)
}

func TestFormatBytesTiers(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
}

func TestSummaryStringEndsWithTotal(t *testing.T) {
	cw := NewStopwatch()
	cw.Start("load_zip")
	require.NoError(t, cw.Stop("load_zip"))
	cw.Start("total")
	require.NoError(t, cw.Stop("total"))

	s := Summary{
		Filename:       "x.zip",
		JobsUsed:       2,
		StrategyUsed:   "cyclic",
		ChunkSizeUsed:  4096,
		Files:          4,
		Folders:        0,
		PerWorkerFiles: []int{2, 2},
		PerWorkerBytes: []uint64{10, 10},
		Coordinator:    cw,
		PerWorker:      []*Stopwatch{NewStopwatch(), NewStopwatch()},
	}
	out := s.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "total"))
}
