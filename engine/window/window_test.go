package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowOptions(t *testing.T) {
	w := defaultWindow()
	for _, opt := range []WindowBuilderOption{
		WithTitle("cube.dae"),
		WithSize(800, 600),
		WithMinSize(100, 50),
		WithMaxSize(1024, 0),
		WithResizable(false),
	} {
		opt(w)
	}

	assert.Equal(t, "cube.dae", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 0, w.maxHeight)
	assert.False(t, w.resizable)
}

func TestWindowLimit(t *testing.T) {
	w := defaultWindow()
	WithMinSize(200, 100)(w)
	WithMaxSize(1000, 0)(w)

	width, height := w.limit(50, 5000)
	assert.Equal(t, 200, width)
	assert.Equal(t, 5000, height)

	width, height = w.limit(4000, 10)
	assert.Equal(t, 1000, width)
	assert.Equal(t, 100, height)
}

func TestUninitializedWindow(t *testing.T) {
	w := defaultWindow()

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)

	// The loop exits immediately when there is no platform window.
	called := false
	w.SetUpdateCallback(func() { called = true })
	w.ProcessMessages()
	assert.False(t, called)
}

func TestNewWindowRejectsInvalidSize(t *testing.T) {
	_, err := NewWindow(WithSize(0, 600))
	assert.Error(t, err)
}
