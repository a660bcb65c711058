package system

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePoolReuse(t *testing.T) {
	p := NewFramePool()
	rect := image.Rect(0, 0, 64, 36)

	a := p.Get(rect)
	require.NotNil(t, a)
	assert.Equal(t, rect, a.Rect)

	p.Put(a)
	b := p.Get(rect)
	assert.Equal(t, rect, b.Rect)
}

func TestFramePoolSeparatesSizes(t *testing.T) {
	p := NewFramePool()
	small := p.Get(image.Rect(0, 0, 16, 16))
	p.Put(small)

	big := p.Get(image.Rect(0, 0, 32, 32))
	assert.Equal(t, 32, big.Rect.Dx())
}

func TestFramePoolPutNil(t *testing.T) {
	p := NewFramePool()
	p.Put(nil) // must not panic
}

func TestCheckMemoryBudgetSmallFrames(t *testing.T) {
	warn, err := CheckMemoryBudget(64, 36, 2)
	require.NoError(t, err)
	assert.Empty(t, warn)
}
