package progress

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuietTrackerPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	tr := New(100, true, &buf)
	tr.Start()
	tr.AddBytes(50)
	tr.Stop()
	assert.Empty(t, buf.String())
}

func TestNoisyTrackerPrintsFinalLine(t *testing.T) {
	var buf bytes.Buffer
	tr := New(10, false, &buf)
	tr.Start()
	tr.AddBytes(10)
	time.Sleep(5 * time.Millisecond)
	tr.Stop()
	require.Contains(t, buf.String(), "done:")
}

func TestWriterWrapsAndCounts(t *testing.T) {
	var sink bytes.Buffer
	tr := New(5, true, &bytes.Buffer{})
	w := tr.Writer(&sink)
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, uint64(5), tr.processed.Load())
	require.Equal(t, "hello", sink.String())
}

func TestStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	tr := New(1, false, &buf)
	tr.Start()
	tr.Stop()
	tr.Stop()
}
