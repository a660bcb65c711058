package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/story2video/internal/easing"
)

func scalarTrack(part string, prop Property, kfs ...Keyframe) Track {
	return Track{PartID: part, Property: prop, Keyframes: kfs}
}

func TestTrackSampleBoundaryClamp(t *testing.T) {
	tr := scalarTrack("body", PropRotation,
		Keyframe{TimeMs: 100, Value: Scalar(1)},
		Keyframe{TimeMs: 200, Value: Scalar(3)},
	)

	tests := []struct {
		time float64
		want float64
	}{
		{-50, 1}, // before first keyframe
		{100, 1},
		{150, 2}, // linear midpoint
		{200, 3},
		{999, 3}, // after last keyframe
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tr.Sample(tt.time).Scalar(), 1e-9, "t=%v", tt.time)
	}
}

func TestTrackSampleEasingFromEndingKeyframe(t *testing.T) {
	tr := scalarTrack("body", PropRotation,
		Keyframe{TimeMs: 0, Value: Scalar(0), Easing: easing.OutQuad},
		Keyframe{TimeMs: 100, Value: Scalar(1), Easing: easing.InQuad},
	)
	// The segment ending at the second keyframe uses InQuad: 0.5^2.
	assert.InDelta(t, 0.25, tr.Sample(50).Scalar(), 1e-9)
}

func TestTrackSampleDuplicateTimesPickLaterKeyframe(t *testing.T) {
	tr := scalarTrack("body", PropRotation,
		Keyframe{TimeMs: 0, Value: Scalar(0)},
		Keyframe{TimeMs: 100, Value: Scalar(5)},
		Keyframe{TimeMs: 100, Value: Scalar(9)},
		Keyframe{TimeMs: 200, Value: Scalar(9)},
	)
	assert.InDelta(t, 9, tr.Sample(100).Scalar(), 1e-9)
	// Interpolation approaching the duplicate heads for the first of the
	// pair, then snaps.
	assert.InDelta(t, 2.5, tr.Sample(50).Scalar(), 1e-9)
}

func TestClipLoopWrapsModuloDuration(t *testing.T) {
	c := &Clip{
		ID:         "spin",
		DurationMs: 1000,
		Loop:       true,
		Tracks: []Track{scalarTrack("body", PropRotation,
			Keyframe{TimeMs: 0, Value: Scalar(0)},
			Keyframe{TimeMs: 1000, Value: Scalar(6.28)},
		)},
	}
	for _, tt := range []float64{0, 250, 333, 999} {
		a := c.Sample(tt)["body"].Rotation
		b := c.Sample(tt + 1000)["body"].Rotation
		assert.InDelta(t, a, b, 1e-9, "t=%v", tt)
	}
}

func TestClipOpacityClamped(t *testing.T) {
	c := &Clip{
		ID:         "flash",
		DurationMs: 100,
		Tracks: []Track{scalarTrack("body", PropOpacity,
			Keyframe{TimeMs: 0, Value: Scalar(0)},
			Keyframe{TimeMs: 100, Value: Scalar(1), Easing: easing.Spring},
		)},
	}
	for i := 0; i <= 100; i += 5 {
		op := c.Sample(float64(i))["body"].Opacity
		assert.GreaterOrEqual(t, op, 0.0)
		assert.LessOrEqual(t, op, 1.0)
	}
}

func TestClipSampleUnanimatedPartsAbsent(t *testing.T) {
	c := &Clip{
		ID:         "solo",
		DurationMs: 100,
		Tracks: []Track{scalarTrack("head", PropScale,
			Keyframe{TimeMs: 0, Value: Scalar(2)},
		)},
	}
	out := c.Sample(0)
	require.Contains(t, out, "head")
	assert.NotContains(t, out, "body")
	// Untouched properties keep identity values.
	assert.Equal(t, 1.0, out["head"].Opacity)
	assert.Equal(t, 2.0, out["head"].Scale)
}

func TestPlayerOnceClipFreezesAtEnd(t *testing.T) {
	c := &Clip{
		ID:         "pop",
		DurationMs: 200,
		Tracks: []Track{scalarTrack("body", PropScale,
			Keyframe{TimeMs: 0, Value: Scalar(1)},
			Keyframe{TimeMs: 200, Value: Scalar(3)},
		)},
	}
	p := NewPlayer("hero", c)
	p.Advance(150)
	assert.False(t, p.Done())

	end := p.Advance(100)
	assert.True(t, p.Done())
	assert.InDelta(t, 3, end["body"].Scale, 1e-9)

	frozen := p.Advance(500)
	assert.InDelta(t, 3, frozen["body"].Scale, 1e-9)
	assert.InDelta(t, 200, p.ElapsedMs, 1e-9)
}

func TestPlayerSpeedScalesAdvance(t *testing.T) {
	c := &Clip{
		ID:         "drift",
		DurationMs: 1000,
		Loop:       true,
		Tracks: []Track{scalarTrack("body", PropRotation,
			Keyframe{TimeMs: 0, Value: Scalar(0)},
			Keyframe{TimeMs: 1000, Value: Scalar(10)},
		)},
	}
	p := NewPlayer("hero", c)
	p.Speed = 2
	out := p.Advance(100)
	assert.InDelta(t, 2, out["body"].Rotation, 1e-9)
}

func TestValidate(t *testing.T) {
	good := &Clip{
		ID:         "ok",
		DurationMs: 100,
		Tracks: []Track{scalarTrack("body", PropScale,
			Keyframe{TimeMs: 0, Value: Scalar(1)},
		)},
	}
	require.NoError(t, good.Validate())

	tests := []struct {
		name string
		c    *Clip
	}{
		{"missing id", &Clip{DurationMs: 100, Tracks: good.Tracks}},
		{"zero duration", &Clip{ID: "x", Tracks: good.Tracks}},
		{"no tracks", &Clip{ID: "x", DurationMs: 100}},
		{"unknown property", &Clip{ID: "x", DurationMs: 100, Tracks: []Track{
			scalarTrack("body", "wiggle", Keyframe{TimeMs: 0, Value: Scalar(1)}),
		}}},
		{"empty track", &Clip{ID: "x", DurationMs: 100, Tracks: []Track{
			{PartID: "body", Property: PropScale},
		}}},
		{"out of order keyframes", &Clip{ID: "x", DurationMs: 100, Tracks: []Track{
			scalarTrack("body", PropScale,
				Keyframe{TimeMs: 100, Value: Scalar(1)},
				Keyframe{TimeMs: 0, Value: Scalar(2)},
			),
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.c.Validate())
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	defaults := Defaults()
	require.NotEmpty(t, defaults)
	for id, c := range defaults {
		assert.Equal(t, id, c.ID)
		assert.NoError(t, c.Validate(), "clip %s", id)
	}
	// The talk clip must drive the mouth.
	talk := defaults["talk"]
	require.NotNil(t, talk)
	shape := talk.Sample(talk.DurationMs / 2)["body"].MouthShape
	assert.NotEmpty(t, shape)
}
