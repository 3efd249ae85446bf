package window

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{mu: &sync.Mutex{}, width: 1280, height: 720}
	for _, opt := range []WindowBuilderOption{
		WithTitle("planet"),
		WithSize(800, 0),
		WithSizeLimits(100, 100, 1000, 900),
	} {
		opt(w)
	}

	assert.Equal(t, "planet", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 900, w.maxHeight)
}

func TestSetSize_ReturnsResizeCallback(t *testing.T) {
	w := &engineWindow{mu: &sync.Mutex{}}
	assert.Nil(t, w.setSize(10, 20))

	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })
	cb := w.setSize(640, 480)
	cb(640, 480)

	assert.Equal(t, [2]int{640, 480}, got)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{mu: &sync.Mutex{}}
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	w.RequestClose()
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)
}
