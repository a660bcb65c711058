// Package easing provides the progress-curve functions used by keyframe
// interpolation. Every function maps t in [0,1] to an eased progress value
// with f(0)=0 and f(1)=1, except the oscillating kinds (elastic, spring)
// and back, which overshoot mid-range. Overshooting kinds must not drive
// properties where values outside the keyframe range are invalid; the clip
// sampler clamps opacity for that reason.
package easing

import "math"

// Kind names an easing curve. The zero value behaves like Linear.
type Kind string

const (
	Linear     Kind = "linear"
	InQuad     Kind = "ease-in"
	OutQuad    Kind = "ease-out"
	InOutQuad  Kind = "ease-in-out"
	InCubic    Kind = "cubic-in"
	OutCubic   Kind = "cubic-out"
	InOutCubic Kind = "cubic-in-out"
	InSine     Kind = "sine-in"
	OutSine    Kind = "sine-out"
	InOutSine  Kind = "sine-in-out"
	OutExpo    Kind = "expo-out"
	OutBack    Kind = "back-out"
	Elastic    Kind = "elastic"
	Spring     Kind = "spring"
	OutBounce  Kind = "bounce-out"
)

// Func maps progress t in [0,1] to eased progress.
type Func func(t float64) float64

var funcs = map[Kind]Func{
	Linear:     func(t float64) float64 { return t },
	InQuad:     func(t float64) float64 { return t * t },
	OutQuad:    func(t float64) float64 { return t * (2 - t) },
	InOutQuad:  inOutQuad,
	InCubic:    func(t float64) float64 { return t * t * t },
	OutCubic:   func(t float64) float64 { u := 1 - t; return 1 - u*u*u },
	InOutCubic: inOutCubic,
	InSine:     func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	OutSine:    func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	InOutSine:  func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 },
	OutExpo:    outExpo,
	OutBack:    outBack,
	Elastic:    elastic,
	Spring:     spring,
	OutBounce:  outBounce,
}

// ForKind returns the easing function for a kind. Unknown kinds fall back
// to Linear so malformed clip files degrade instead of failing.
func ForKind(k Kind) Func {
	if f, ok := funcs[k]; ok {
		return f
	}
	return funcs[Linear]
}

// Overshoots reports whether the kind may leave [0,1] mid-curve.
func Overshoots(k Kind) bool {
	switch k {
	case Elastic, Spring, OutBack:
		return true
	}
	return false
}

// Kinds returns every registered easing kind.
func Kinds() []Kind {
	out := make([]Kind, 0, len(funcs))
	for k := range funcs {
		out = append(out, k)
	}
	return out
}

func inOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

func inOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func outExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func outBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

func elastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	const c4 = (2 * math.Pi) / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// spring is a lightly damped oscillation settling on 1. Unlike elastic it
// starts with a fast ramp, which reads better on positional properties.
func spring(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return 1 - math.Exp(-6*t)*math.Cos(12*t)
}

func outBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
