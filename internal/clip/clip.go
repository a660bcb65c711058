// Package clip implements animation clips: keyframed value tracks per
// character part, sampled at a time offset with per-keyframe easing.
package clip

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/story2video/internal/easing"
)

// Property names an animatable property of a character part.
type Property string

const (
	PropPosition   Property = "position"
	PropRotation   Property = "rotation"
	PropScale      Property = "scale"
	PropOpacity    Property = "opacity"
	PropMouthShape Property = "mouthShape"
)

var knownProperties = map[Property]bool{
	PropPosition:   true,
	PropRotation:   true,
	PropScale:      true,
	PropOpacity:    true,
	PropMouthShape: true,
}

// Keyframe is a (time, value, easing) control point. The easing kind
// applies to the segment ENDING at this keyframe.
type Keyframe struct {
	TimeMs float64     `yaml:"time"`
	Value  Value       `yaml:"value"`
	Easing easing.Kind `yaml:"easing,omitempty"`
}

// Track is the timed value history of one property of one part.
type Track struct {
	PartID    string     `yaml:"part"`
	Property  Property   `yaml:"property"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Sample returns the track value at tMs. Times at or before the first
// keyframe return its value unchanged; times at or after the last return
// the last value; no extrapolation. Duplicate keyframe times resolve to
// the later-declared keyframe.
func (tr *Track) Sample(tMs float64) Value {
	kfs := tr.Keyframes
	if len(kfs) == 0 {
		return Value{}
	}
	if tMs <= kfs[0].TimeMs {
		return kfs[0].Value
	}
	last := kfs[len(kfs)-1]
	if tMs >= last.TimeMs {
		return last.Value
	}

	// Scan from the end so duplicate times pick the later-declared frame.
	prev := 0
	for i := len(kfs) - 1; i >= 0; i-- {
		if kfs[i].TimeMs <= tMs {
			prev = i
			break
		}
	}
	next := prev + 1

	span := kfs[next].TimeMs - kfs[prev].TimeMs
	if span <= 0 {
		return kfs[next].Value
	}
	t := (tMs - kfs[prev].TimeMs) / span
	t = easing.ForKind(kfs[next].Easing)(t)
	return lerpValue(kfs[prev].Value, kfs[next].Value, t)
}

// Clip is a named, timed collection of tracks sharing one time base.
// DurationMs need not equal the last keyframe time; it only matters for
// loop wrap-around.
type Clip struct {
	ID         string  `yaml:"id"`
	DurationMs float64 `yaml:"duration"`
	Loop       bool    `yaml:"loop,omitempty"`
	Tracks     []Track `yaml:"tracks"`
}

// Transform is one part's sampled state.
type Transform struct {
	Position   mgl64.Vec2
	Rotation   float64
	Scale      float64
	Opacity    float64
	MouthShape string
}

// IdentityTransform is the state of an unanimated part.
func IdentityTransform() Transform {
	return Transform{Scale: 1, Opacity: 1}
}

// Sample evaluates every track at elapsed time tMs and returns the
// resulting transform per part. Looping clips reduce tMs modulo the clip
// duration first. Opacity is clamped to [0,1] after easing: overshooting
// easing kinds are valid for motion but not for alpha.
func (c *Clip) Sample(tMs float64) map[string]Transform {
	if c.Loop && c.DurationMs > 0 {
		tMs = math.Mod(tMs, c.DurationMs)
		if tMs < 0 {
			tMs += c.DurationMs
		}
	}
	out := make(map[string]Transform)
	for i := range c.Tracks {
		tr := &c.Tracks[i]
		tf, ok := out[tr.PartID]
		if !ok {
			tf = IdentityTransform()
		}
		v := tr.Sample(tMs)
		switch tr.Property {
		case PropPosition:
			tf.Position = v.Vec2()
		case PropRotation:
			tf.Rotation = v.Scalar()
		case PropScale:
			tf.Scale = v.Scalar()
		case PropOpacity:
			tf.Opacity = clamp01(v.Scalar())
		case PropMouthShape:
			tf.MouthShape = v.ShapeTag()
		}
		out[tr.PartID] = tf
	}
	return out
}

// Validate checks the invariants a hand-authored clip file can break.
func (c *Clip) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("clip has no id")
	}
	if c.DurationMs <= 0 {
		return fmt.Errorf("clip %q: duration must be positive, got %v", c.ID, c.DurationMs)
	}
	if len(c.Tracks) == 0 {
		return fmt.Errorf("clip %q: no tracks", c.ID)
	}
	for ti := range c.Tracks {
		tr := &c.Tracks[ti]
		if !knownProperties[tr.Property] {
			return fmt.Errorf("clip %q track %d: unknown property %q", c.ID, ti, tr.Property)
		}
		if len(tr.Keyframes) == 0 {
			return fmt.Errorf("clip %q track %d (%s/%s): no keyframes", c.ID, ti, tr.PartID, tr.Property)
		}
		for i := 1; i < len(tr.Keyframes); i++ {
			if tr.Keyframes[i].TimeMs < tr.Keyframes[i-1].TimeMs {
				return fmt.Errorf("clip %q track %d: keyframes out of order at index %d", c.ID, ti, i)
			}
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
