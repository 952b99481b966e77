package gotest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStream = `{"Time":"2026-08-25T10:00:00Z","Action":"run","Package":"qcounts/internal/user","Test":"TestCreateUser"}
{"Time":"2026-08-25T10:00:00Z","Action":"output","Package":"qcounts/internal/user","Test":"TestCreateUser","Output":"=== RUN   TestCreateUser\n"}
{"Time":"2026-08-25T10:00:01Z","Action":"pass","Package":"qcounts/internal/user","Test":"TestCreateUser","Elapsed":0.25}
{"Time":"2026-08-25T10:00:01Z","Action":"run","Package":"qcounts/internal/user","Test":"TestDeleteUser"}
{"Time":"2026-08-25T10:00:02Z","Action":"fail","Package":"qcounts/internal/user","Test":"TestDeleteUser","Elapsed":0.5}
{"Time":"2026-08-25T10:00:02Z","Action":"skip","Package":"qcounts/internal/payment","Test":"TestRefund","Elapsed":0}
{"Time":"2026-08-25T10:00:03Z","Action":"pass","Package":"qcounts/internal/user","Elapsed":1.2}
`

func TestParser_Parse(t *testing.T) {
	parser := NewParser()
	summary, err := parser.Parse(strings.NewReader(sampleStream))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 3, summary.Total())

	require.Len(t, summary.Results, 3)
	assert.Equal(t, "TestCreateUser", summary.Results[0].Name)
	assert.Equal(t, "qcounts/internal/user", summary.Results[0].Package)
	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	// Skipped tests did not fail
	assert.True(t, summary.Results[2].Success)
}

func TestParser_ParseSkipsNonEventLines(t *testing.T) {
	stream := "# qcounts/internal/user\n" +
		"go: downloading something\n" +
		`{"Action":"pass","Package":"qcounts/internal/user","Test":"TestA","Elapsed":0.1}` + "\n" +
		"{not json at all\n"

	parser := NewParser()
	summary, err := parser.Parse(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Total())
}

func TestParser_ProgressCallback(t *testing.T) {
	parser := NewParser()

	var calls [][3]int
	parser.SetProgress(func(completed, passed, failed int) {
		calls = append(calls, [3]int{completed, passed, failed})
	})

	_, err := parser.Parse(strings.NewReader(sampleStream))
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, [3]int{1, 1, 0}, calls[0])
	assert.Equal(t, [3]int{2, 1, 1}, calls[1])
	assert.Equal(t, [3]int{3, 1, 1}, calls[2])
}

func TestParser_EmptyStream(t *testing.T) {
	parser := NewParser()
	summary, err := parser.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total())
	assert.Empty(t, summary.Results)
}
