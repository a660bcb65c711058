package clip

import "github.com/ivlev/story2video/internal/easing"

// Built-in clips for the stock story actions. Positions are offsets in
// canvas units relative to the character's authored anchor; scale and
// rotation are multiplicative/absolute per part "body".

// Defaults returns the built-in action clips keyed by id. Storyboards may
// override any of them through a clip library file.
func Defaults() map[string]*Clip {
	clips := []*Clip{
		idleClip(),
		walkClip(),
		jumpClip(),
		danceClip(),
		waveClip(),
		talkClip(),
	}
	out := make(map[string]*Clip, len(clips))
	for _, c := range clips {
		out[c.ID] = c
	}
	return out
}

func idleClip() *Clip {
	return &Clip{
		ID:         "idle",
		DurationMs: 2000,
		Loop:       true,
		Tracks: []Track{
			{PartID: "body", Property: PropScale, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Scalar(1.0)},
				{TimeMs: 1000, Value: Scalar(1.03), Easing: easing.InOutSine},
				{TimeMs: 2000, Value: Scalar(1.0), Easing: easing.InOutSine},
			}},
		},
	}
}

func walkClip() *Clip {
	return &Clip{
		ID:         "walk",
		DurationMs: 800,
		Loop:       true,
		Tracks: []Track{
			{PartID: "body", Property: PropPosition, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Vec2(0, 0)},
				{TimeMs: 200, Value: Vec2(0, -6), Easing: easing.OutQuad},
				{TimeMs: 400, Value: Vec2(0, 0), Easing: easing.InQuad},
				{TimeMs: 600, Value: Vec2(0, -6), Easing: easing.OutQuad},
				{TimeMs: 800, Value: Vec2(0, 0), Easing: easing.InQuad},
			}},
			{PartID: "body", Property: PropRotation, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Scalar(-0.04)},
				{TimeMs: 400, Value: Scalar(0.04), Easing: easing.InOutSine},
				{TimeMs: 800, Value: Scalar(-0.04), Easing: easing.InOutSine},
			}},
		},
	}
}

func jumpClip() *Clip {
	return &Clip{
		ID:         "jump",
		DurationMs: 900,
		Loop:       true,
		Tracks: []Track{
			{PartID: "body", Property: PropPosition, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Vec2(0, 0)},
				{TimeMs: 150, Value: Vec2(0, 8), Easing: easing.OutQuad},
				{TimeMs: 450, Value: Vec2(0, -42), Easing: easing.OutCubic},
				{TimeMs: 750, Value: Vec2(0, 0), Easing: easing.OutBounce},
				{TimeMs: 900, Value: Vec2(0, 0)},
			}},
			{PartID: "body", Property: PropScale, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Scalar(1.0)},
				{TimeMs: 150, Value: Scalar(0.92), Easing: easing.OutQuad},
				{TimeMs: 450, Value: Scalar(1.06), Easing: easing.OutQuad},
				{TimeMs: 900, Value: Scalar(1.0), Easing: easing.InOutQuad},
			}},
		},
	}
}

func danceClip() *Clip {
	return &Clip{
		ID:         "dance",
		DurationMs: 1200,
		Loop:       true,
		Tracks: []Track{
			{PartID: "body", Property: PropPosition, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Vec2(0, 0)},
				{TimeMs: 300, Value: Vec2(-10, -14), Easing: easing.OutQuad},
				{TimeMs: 600, Value: Vec2(0, 0), Easing: easing.InQuad},
				{TimeMs: 900, Value: Vec2(10, -14), Easing: easing.OutQuad},
				{TimeMs: 1200, Value: Vec2(0, 0), Easing: easing.InQuad},
			}},
			{PartID: "body", Property: PropRotation, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Scalar(-0.12)},
				{TimeMs: 600, Value: Scalar(0.12), Easing: easing.InOutSine},
				{TimeMs: 1200, Value: Scalar(-0.12), Easing: easing.InOutSine},
			}},
		},
	}
}

func waveClip() *Clip {
	return &Clip{
		ID:         "wave",
		DurationMs: 1000,
		Loop:       false,
		Tracks: []Track{
			{PartID: "body", Property: PropRotation, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Scalar(0)},
				{TimeMs: 250, Value: Scalar(0.18), Easing: easing.OutBack},
				{TimeMs: 500, Value: Scalar(-0.1), Easing: easing.InOutSine},
				{TimeMs: 750, Value: Scalar(0.12), Easing: easing.InOutSine},
				{TimeMs: 1000, Value: Scalar(0), Easing: easing.Spring},
			}},
		},
	}
}

func talkClip() *Clip {
	return &Clip{
		ID:         "talk",
		DurationMs: 600,
		Loop:       true,
		Tracks: []Track{
			{PartID: "body", Property: PropMouthShape, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Shape("closed")},
				{TimeMs: 150, Value: Shape("half")},
				{TimeMs: 300, Value: Shape("open")},
				{TimeMs: 450, Value: Shape("half")},
				{TimeMs: 600, Value: Shape("closed")},
			}},
			{PartID: "body", Property: PropScale, Keyframes: []Keyframe{
				{TimeMs: 0, Value: Scalar(1.0)},
				{TimeMs: 300, Value: Scalar(1.02), Easing: easing.InOutSine},
				{TimeMs: 600, Value: Scalar(1.0), Easing: easing.InOutSine},
			}},
		},
	}
}
