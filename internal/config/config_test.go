package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAspectPreset(t *testing.T) {
	tests := []struct {
		preset string
		w, h   int
	}{
		{"16:9", 1280, 720},
		{"9:16", 720, 1280},
		{"1:1", 1080, 1080},
	}
	for _, tt := range tests {
		o := DefaultOptions()
		o.AspectRatio = tt.preset
		require.NoError(t, o.ApplyAspectPreset())
		assert.Equal(t, tt.w, o.Width, "preset %s", tt.preset)
		assert.Equal(t, tt.h, o.Height, "preset %s", tt.preset)
	}
}

func TestApplyAspectPresetUnknown(t *testing.T) {
	o := DefaultOptions()
	o.AspectRatio = "4:3"
	assert.Error(t, o.ApplyAspectPreset())
}

func TestApplyAspectPresetEmptyKeepsExplicitSize(t *testing.T) {
	o := DefaultOptions()
	o.Width, o.Height = 640, 480
	require.NoError(t, o.ApplyAspectPreset())
	assert.Equal(t, 640, o.Width)
	assert.Equal(t, 480, o.Height)
}

func TestValidate(t *testing.T) {
	o := DefaultOptions()
	require.NoError(t, o.Validate())

	bad := DefaultOptions()
	bad.Format = "avi"
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.FPS = 0
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.FPS = 500
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.Width = -1
	assert.Error(t, bad.Validate())
}

func TestValidateRoundsOddDimensions(t *testing.T) {
	o := DefaultOptions()
	o.Width, o.Height = 639, 481
	require.NoError(t, o.Validate())
	assert.Equal(t, 640, o.Width)
	assert.Equal(t, 482, o.Height)
}
