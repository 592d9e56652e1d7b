package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var info, errs bytes.Buffer
	SetWriters(&info, &errs)
	SetColor(false)
	prev := GetLevel()
	t.Cleanup(func() {
		SetWriters(os.Stdout, os.Stderr)
		SetColor(true)
		SetLevel(prev)
	})
	return &info, &errs
}

func TestLevelsRouteToSeparateStreams(t *testing.T) {
	info, errs := capture(t)
	SetLevel(DEBUG)

	Info("Set new position: X%d Y%d Z%d", 1, 2, 3)
	Error("Unknown command %s", "G99")

	assert.Contains(t, info.String(), "[INFO] logger_test.go:")
	assert.Contains(t, info.String(), "Set new position: X1 Y2 Z3")
	assert.NotContains(t, info.String(), "G99")
	assert.Contains(t, errs.String(), "[ERROR]")
	assert.Contains(t, errs.String(), "Unknown command G99")
}

func TestLevelFiltering(t *testing.T) {
	info, _ := capture(t)
	SetLevel(WARN)

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	assert.NotContains(t, info.String(), "hidden")
	assert.Contains(t, info.String(), "[WARN]")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, l)

	l, err = ParseLevel("Highlight")
	require.NoError(t, err)
	assert.Equal(t, HIGHLIGHT, l)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestSetLogOutputRejectsUnknownType(t *testing.T) {
	capture(t)
	assert.Error(t, SetLogOutput('x'))
}

func TestMessagesAreAlwaysFormatted(t *testing.T) {
	info, errs := capture(t)

	Info("100%% done")
	Error("Failed to save image: %v", os.ErrPermission)

	assert.Contains(t, info.String(), "100% done")
	assert.NotContains(t, info.String(), "%%")
	assert.Contains(t, errs.String(), "Failed to save image: permission denied")
	assert.NotContains(t, errs.String(), "%!")
}
