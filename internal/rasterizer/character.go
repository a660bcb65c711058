package rasterizer

import (
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/ivlev/story2video/internal/lipsync"
	"github.com/ivlev/story2video/internal/scene"
)

// motionActions are the actions that add a vertical bounce on top of the
// clip-driven pose.
var motionActions = map[string]bool{"walk": true, "jump": true, "dance": true}

// drawCharacter paints one character as layered shapes: body ellipse,
// head circle, eyes, mouth stroke and a name label. Authored x/y are
// normalized canvas fractions; the pose offset is in clip units relative
// to a 100-unit character height.
func drawCharacter(dc *gg.Context, ch *scene.CharacterPlacement, pose Pose, w, h, progress float64) {
	if pose.Opacity <= 0 {
		return
	}

	size := h * 0.13 * ch.EffectiveScale() * pose.Scale // head radius basis
	unit := size / 25                        // clip offset unit
	cx := ch.X*w + pose.Offset.X()*unit
	cy := ch.Y*h + pose.Offset.Y()*unit

	if motionActions[strings.ToLower(ch.AnimationID)] {
		cy -= math.Abs(math.Sin(progress*2*math.Pi*3)) * size * 0.3
	}

	dc.Push()
	if ch.FlipX {
		dc.ScaleAbout(-1, 1, cx, cy)
	}
	if pose.Rotation != 0 {
		dc.RotateAbout(pose.Rotation, cx, cy)
	}

	a := pose.Opacity
	bodyR, bodyG, bodyB := characterTint(ch.RigID)

	// Body.
	dc.SetRGBA(bodyR, bodyG, bodyB, a)
	dc.DrawEllipse(cx, cy+size*1.1, size*0.85, size*1.1)
	dc.Fill()

	// Head.
	dc.SetRGBA(math.Min(1, bodyR*1.08), math.Min(1, bodyG*1.08), math.Min(1, bodyB*1.08), a)
	dc.DrawCircle(cx, cy, size)
	dc.Fill()

	drawEyes(dc, ch.Expression, cx, cy, size, a)
	drawMouth(dc, pose.Mouth, ch.Expression, cx, cy, size, a)

	dc.Pop()

	if ch.Name != "" {
		dc.SetRGBA(1, 1, 1, a)
		dc.DrawStringAnchored(ch.Name, cx, cy+size*2.5, 0.5, 0.5)
	}
}

// characterTint derives a stable body color from the rig id so the same
// character looks the same in every scene.
func characterTint(rigID string) (float64, float64, float64) {
	hash := 0
	for _, c := range rigID {
		hash = hash*31 + int(c)
	}
	hue := math.Mod(float64(hash)*0.137, 1)
	// Pastel band: fixed saturation/value, hue from the id.
	r, g, b := hsv(hue, 0.45, 0.9)
	return r, g, b
}

func drawEyes(dc *gg.Context, expression string, cx, cy, size, a float64) {
	ex := size * 0.38
	ey := cy - size*0.15
	er := size * 0.12

	switch expression {
	case "happy":
		dc.SetRGBA(0.1, 0.1, 0.15, a)
		dc.SetLineWidth(size * 0.07)
		dc.DrawArc(cx-ex, ey, er*1.2, math.Pi, 2*math.Pi)
		dc.Stroke()
		dc.DrawArc(cx+ex, ey, er*1.2, math.Pi, 2*math.Pi)
		dc.Stroke()
	case "surprised":
		dc.SetRGBA(0.1, 0.1, 0.15, a)
		dc.DrawCircle(cx-ex, ey, er*1.5)
		dc.DrawCircle(cx+ex, ey, er*1.5)
		dc.Fill()
	case "angry":
		dc.SetRGBA(0.1, 0.1, 0.15, a)
		dc.DrawCircle(cx-ex, ey, er)
		dc.DrawCircle(cx+ex, ey, er)
		dc.Fill()
		dc.SetLineWidth(size * 0.08)
		dc.DrawLine(cx-ex-er*1.4, ey-er*2.2, cx-ex+er*1.2, ey-er*1.2)
		dc.DrawLine(cx+ex+er*1.4, ey-er*2.2, cx+ex-er*1.2, ey-er*1.2)
		dc.Stroke()
	case "sad":
		dc.SetRGBA(0.1, 0.1, 0.15, a)
		dc.DrawCircle(cx-ex, ey+er*0.5, er)
		dc.DrawCircle(cx+ex, ey+er*0.5, er)
		dc.Fill()
	default:
		dc.SetRGBA(0.1, 0.1, 0.15, a)
		dc.DrawCircle(cx-ex, ey, er)
		dc.DrawCircle(cx+ex, ey, er)
		dc.Fill()
	}
}

// drawMouth paints the mouth for the sampled lip-sync shape. With a
// closed mouth the expression decides between a smile, a frown and a
// neutral line.
func drawMouth(dc *gg.Context, shape lipsync.MouthShape, expression string, cx, cy, size, a float64) {
	my := cy + size*0.42
	dc.SetRGBA(0.45, 0.1, 0.15, a)

	switch shape {
	case lipsync.ShapeOpen:
		dc.DrawEllipse(cx, my, size*0.28, size*0.34)
		dc.Fill()
	case lipsync.ShapeWide:
		dc.DrawEllipse(cx, my, size*0.4, size*0.16)
		dc.Fill()
	case lipsync.ShapeRound:
		dc.DrawCircle(cx, my, size*0.2)
		dc.Fill()
	case lipsync.ShapeHalf:
		dc.DrawEllipse(cx, my, size*0.3, size*0.1)
		dc.Fill()
	default:
		dc.SetLineWidth(size * 0.07)
		switch expression {
		case "happy":
			dc.DrawArc(cx, my-size*0.1, size*0.35, 0.15*math.Pi, 0.85*math.Pi)
			dc.Stroke()
		case "sad":
			dc.DrawArc(cx, my+size*0.2, size*0.35, 1.15*math.Pi, 1.85*math.Pi)
			dc.Stroke()
		default:
			dc.DrawLine(cx-size*0.25, my, cx+size*0.25, my)
			dc.Stroke()
		}
	}
}

// hsv converts to RGB, all components in [0,1].
func hsv(h, s, v float64) (float64, float64, float64) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
