//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpNestedSpans(t *testing.T) {
	Init(64)
	endTick := Start("tick")
	endTransfer := Start("transfer")
	endTransfer()
	endTick()

	path, err := Dump(t.TempDir())
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc ssFile
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Profiles, 1)

	var names []string
	for _, f := range doc.Shared.Frames {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "tick")
	assert.Contains(t, names, "transfer")

	var kinds []string
	for _, e := range doc.Profiles[0].Events {
		kinds = append(kinds, e.Type)
	}
	assert.Equal(t, []string{"O", "O", "C", "C"}, kinds)
	assert.Equal(t, "transfer", doc.Shared.Frames[doc.Profiles[0].Events[1].Frame].Name)
}

func TestRingKeepsNewestEvents(t *testing.T) {
	Init(2)
	for i := 0; i < 3; i++ {
		Start("span")()
	}
	evs := events.snapshot()
	require.Len(t, evs, 2)
	assert.True(t, evs[0].open)
	assert.False(t, evs[1].open)
}

func TestDumpEmpty(t *testing.T) {
	Init(4)
	_, err := Dump(t.TempDir())
	require.Error(t, err)
}
