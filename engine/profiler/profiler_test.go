package profiler

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithLogger(log.New(&buf, "", 0)), WithInterval(time.Second))
	start := p.lastTime

	for i := 1; i < 60; i++ {
		assert.False(t, p.Tick(start.Add(time.Duration(i)*time.Second/60)))
	}
	require.True(t, p.Tick(start.Add(time.Second)))

	assert.InDelta(t, 60, p.Last().FPS, 1e-9)
	assert.Contains(t, buf.String(), "[Profiler] FPS: 60.00")

	// The frame count restarts after each report.
	assert.False(t, p.Tick(start.Add(time.Second+time.Millisecond)))
}

func TestOptionDefaults(t *testing.T) {
	p := NewProfiler(WithLogger(nil), WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.Same(t, log.Default(), p.logger)
}

func TestStartCPUProfile(t *testing.T) {
	dir := t.TempDir()
	stop := StartCPUProfile(dir)
	stop()

	_, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	assert.NoError(t, err)
}
