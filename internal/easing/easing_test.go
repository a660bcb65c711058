package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints(t *testing.T) {
	for _, k := range Kinds() {
		f := ForKind(k)
		assert.InDelta(t, 0, f(0), 1e-9, "kind %s at t=0", k)
		assert.InDelta(t, 1, f(1), 1e-9, "kind %s at t=1", k)
	}
}

func TestNonOvershootingKindsStayInRange(t *testing.T) {
	for _, k := range Kinds() {
		if Overshoots(k) {
			continue
		}
		f := ForKind(k)
		for i := 0; i <= 100; i++ {
			tt := float64(i) / 100
			v := f(tt)
			assert.GreaterOrEqual(t, v, -1e-9, "kind %s at t=%.2f", k, tt)
			assert.LessOrEqual(t, v, 1+1e-9, "kind %s at t=%.2f", k, tt)
		}
	}
}

func TestOvershootingKindsLeaveRange(t *testing.T) {
	for _, k := range []Kind{Elastic, Spring, OutBack} {
		f := ForKind(k)
		left := false
		for i := 1; i < 100; i++ {
			v := f(float64(i) / 100)
			if v < 0 || v > 1 {
				left = true
				break
			}
		}
		assert.True(t, left, "kind %s should overshoot mid-curve", k)
	}
}

func TestUnknownKindFallsBackToLinear(t *testing.T) {
	f := ForKind("wobbly")
	assert.Equal(t, 0.37, f(0.37))
}

func TestMidpoints(t *testing.T) {
	tests := []struct {
		kind Kind
		t    float64
		want float64
	}{
		{Linear, 0.5, 0.5},
		{InQuad, 0.5, 0.25},
		{OutQuad, 0.5, 0.75},
		{InOutQuad, 0.5, 0.5},
		{InCubic, 0.5, 0.125},
		{OutBounce, 1.0 / 2.75, 0.75 + 7.5625*(0.5/2.75)*(0.5/2.75)},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ForKind(tt.kind)(tt.t), 1e-9, "kind %s", tt.kind)
	}
}
