package logging

import (
	"bytes"
	"testing"

	"github.com/go-kit/kit/log/level"
	"github.com/stretchr/testify/assert"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	level.Info(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "ts=")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty")

	level.Debug(logger).Log("msg", "debug-line")
	level.Info(logger).Log("msg", "info-line")

	assert.NotContains(t, buf.String(), "debug-line")
	assert.Contains(t, buf.String(), "info-line")
}
