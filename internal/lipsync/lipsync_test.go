package lipsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "123 !!!"} {
		d := Generate(text, 5000, 150)
		require.Len(t, d.Frames, 1, "text %q", text)
		assert.Equal(t, ShapeClosed, d.Frames[0].Shape)
		assert.Equal(t, 0.0, d.Frames[0].TimeMs)
		assert.Equal(t, 0.0, d.TotalDurationMs)
	}
}

func TestGenerateNeverExceedsWindow(t *testing.T) {
	tests := []struct {
		text       string
		durationMs float64
	}{
		{"Hello there friend", 4000},
		{"A very long narration with many words spread across the scene", 2000},
		{"Hi", 10000},
	}
	for _, tt := range tests {
		d := Generate(tt.text, tt.durationMs, 150)
		assert.LessOrEqual(t, d.TotalDurationMs, tt.durationMs, "text %q", tt.text)
		for _, f := range d.Frames {
			assert.LessOrEqual(t, f.TimeMs, d.TotalDurationMs)
		}
	}
}

func TestGenerateSpeakingPaceCapsDuration(t *testing.T) {
	// Two words at 120 wpm speak for one second even in a ten second scene.
	d := Generate("Hi there", 10000, 120)
	assert.InDelta(t, 1000, d.TotalDurationMs, 1)
}

func TestGenerateEndsClosed(t *testing.T) {
	d := Generate("Hello world", 3000, 150)
	require.NotEmpty(t, d.Frames)
	assert.Equal(t, ShapeClosed, d.Frames[len(d.Frames)-1].Shape)
}

func TestGenerateSuppressesRepeatedShapes(t *testing.T) {
	d := Generate("Banana", 2000, 150)
	for i := 1; i < len(d.Frames); i++ {
		assert.NotEqual(t, d.Frames[i-1].Shape, d.Frames[i].Shape,
			"consecutive duplicate at frame %d", i)
	}
}

func TestGenerateDigraphsMatchFirst(t *testing.T) {
	// "sha" segments as [sh, a], two units, so the vowel lands at the
	// halfway point. A per-letter split would put it at one third.
	d := Generate("sha", 1000, 0)
	require.Len(t, d.Frames, 3)
	assert.Equal(t, ShapeHalf, d.Frames[0].Shape)
	assert.Equal(t, ShapeOpen, d.Frames[1].Shape)
	assert.InDelta(t, 500, d.Frames[1].TimeMs, 1e-9)
}

func TestShapeAt(t *testing.T) {
	d := Data{
		Frames: []Frame{
			{TimeMs: 0, Shape: ShapeClosed},
			{TimeMs: 100, Shape: ShapeOpen},
			{TimeMs: 200, Shape: ShapeWide},
		},
		TotalDurationMs: 300,
	}
	tests := []struct {
		time float64
		want MouthShape
	}{
		{-10, ShapeClosed},
		{0, ShapeClosed},
		{99, ShapeClosed},
		{100, ShapeOpen},
		{150, ShapeOpen},
		{250, ShapeWide},
		{300, ShapeWide},
		{301, ShapeClosed}, // past the timeline
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.ShapeAt(tt.time), "t=%v", tt.time)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"Hi! Go now.", 3},
		{"one  two\tthree", 3},
		{"123 ... !!", 0},
		{"it's two", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WordCount(tt.text), "text %q", tt.text)
	}
}

func TestGenerateVowelShapes(t *testing.T) {
	d := Generate("a", 1000, 0)
	require.NotEmpty(t, d.Frames)
	assert.Equal(t, ShapeOpen, d.Frames[0].Shape)

	d = Generate("o", 1000, 0)
	assert.Equal(t, ShapeRound, d.Frames[0].Shape)

	d = Generate("m", 1000, 0)
	assert.Equal(t, ShapeClosed, d.Frames[0].Shape)
}
