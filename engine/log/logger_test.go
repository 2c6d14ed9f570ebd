package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, Debug, LevelFromFlags(true, true, false))
	assert.Equal(t, Info, LevelFromFlags(false, true, false))
	assert.Equal(t, Error, LevelFromFlags(false, false, true))
	assert.Equal(t, Notice, LevelFromFlags(false, false, false))
}

func TestSinkAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	SetLevel(Info)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	l := New("logtest")
	l.Debug("hidden")
	l.Infof("shown %d", 42)

	out := buf.String()
	assert.Contains(t, out, "[logtest]")
	assert.Contains(t, out, "shown 42")
	assert.NotContains(t, out, "hidden")
}
