package clip

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ScalarValue ValueKind = iota
	Vec2Value
	ShapeValue
)

// Value is a tagged keyframe value: a scalar, a 2D vector, or a symbolic
// shape tag. Interpolation dispatches on the kind; shape tags never
// interpolate.
type Value struct {
	kind   ValueKind
	scalar float64
	vec    mgl64.Vec2
	shape  string
}

// Scalar wraps a float value.
func Scalar(v float64) Value { return Value{kind: ScalarValue, scalar: v} }

// Vec2 wraps a 2D vector value.
func Vec2(x, y float64) Value { return Value{kind: Vec2Value, vec: mgl64.Vec2{x, y}} }

// Shape wraps a symbolic tag, e.g. a mouth shape name.
func Shape(s string) Value { return Value{kind: ShapeValue, shape: s} }

func (v Value) Kind() ValueKind  { return v.kind }
func (v Value) Scalar() float64  { return v.scalar }
func (v Value) Vec2() mgl64.Vec2 { return v.vec }
func (v Value) ShapeTag() string { return v.shape }

// lerpValue interpolates between two values with eased progress t.
// Shape values, and mismatched kinds, step at t=0.5.
func lerpValue(a, b Value, t float64) Value {
	if a.kind != b.kind || a.kind == ShapeValue {
		if t < 0.5 {
			return a
		}
		return b
	}
	switch a.kind {
	case Vec2Value:
		return Value{kind: Vec2Value, vec: a.vec.Add(b.vec.Sub(a.vec).Mul(t))}
	default:
		return Scalar(a.scalar + (b.scalar-a.scalar)*t)
	}
}

// MarshalYAML encodes the value as a bare scalar, a [x, y] pair, or a
// string, matching the hand-authored clip file format.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case Vec2Value:
		return []float64{v.vec.X(), v.vec.Y()}, nil
	case ShapeValue:
		return v.shape, nil
	default:
		return v.scalar, nil
	}
}

// UnmarshalYAML decodes a scalar, a two-element sequence, or a string.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("vector keyframe value needs 2 components, got %d", len(pair))
		}
		*v = Vec2(pair[0], pair[1])
		return nil
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err == nil && node.Tag != "!!str" {
			*v = Scalar(f)
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*v = Shape(s)
		return nil
	default:
		return fmt.Errorf("unsupported keyframe value node kind %d", node.Kind)
	}
}
