// Package rasterizer paints one visual frame from scene data and sampled
// animation state: camera transform, procedural background, layered
// characters and the narration overlay. It never mutates scene data or
// animation state, it only samples them.
package rasterizer

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/story2video/internal/lipsync"
	"github.com/ivlev/story2video/internal/scene"
	"github.com/ivlev/story2video/internal/system"
)

// supersample renders at 2x and downscales, the same quality trick the
// encoder path has always used for zoomed frames.
const supersample = 2

// Pose is one character's sampled animation state for the current frame.
type Pose struct {
	Offset   mgl64.Vec2
	Rotation float64
	Scale    float64
	Opacity  float64
	Mouth    lipsync.MouthShape
}

// IdentityPose is the pose of a character with no active clip.
func IdentityPose() Pose {
	return Pose{Scale: 1, Opacity: 1, Mouth: lipsync.ShapeClosed}
}

// Renderer paints frames at a fixed output size. When Pool is set the
// output frames come from it; callers return them with Pool.Put once
// the frame has been consumed.
type Renderer struct {
	W, H int
	Pool *system.FramePool
}

// New creates a renderer for the given output size.
func New(w, h int) *Renderer {
	return &Renderer{W: w, H: h}
}

// RenderFrame paints the scene at a normalized progress value in [0,1]
// using the given per-rig poses, and returns the finished RGBA frame.
func (r *Renderer) RenderFrame(sc *scene.SceneRenderData, progress float64, poses map[string]Pose) *image.RGBA {
	w := float64(r.W * supersample)
	h := float64(r.H * supersample)
	dc := gg.NewContext(r.W*supersample, r.H*supersample)

	// Camera: zoom about canvas center, then pan. Pan values are
	// normalized fractions of the canvas.
	zoom := sc.Zoom()
	dc.Push()
	dc.ScaleAbout(zoom, zoom, w/2, h/2)
	dc.Translate(-sc.CameraPanX*w, -sc.CameraPanY*h)

	drawBackground(dc, sc.BackgroundID, w, h, progress)

	for i := range sc.Characters {
		ch := &sc.Characters[i]
		pose, ok := poses[ch.RigID]
		if !ok {
			pose = IdentityPose()
		}
		drawCharacter(dc, ch, pose, w, h, progress)
	}
	dc.Pop()

	// Narration overlay stays outside the camera transform.
	if sc.Narration != "" {
		drawNarration(dc, sc.Narration, w, h)
	}

	return r.downscale(dc.Image())
}

// RenderEndCard paints the closing share card: title, prompt and a QR
// code linking to the story.
func (r *Renderer) RenderEndCard(title string, qr image.Image) *image.RGBA {
	w := float64(r.W * supersample)
	h := float64(r.H * supersample)
	dc := gg.NewContext(r.W*supersample, r.H*supersample)

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, color.RGBA{24, 26, 48, 255})
	grad.AddColorStop(1, color.RGBA{56, 42, 88, 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	if title != "" {
		dc.DrawStringAnchored(title, w/2, h*0.18, 0.5, 0.5)
	}
	dc.DrawStringAnchored("Scan to watch again", w/2, h*0.82, 0.5, 0.5)

	if qr != nil {
		side := int(h * 0.42)
		scaled := image.NewRGBA(image.Rect(0, 0, side, side))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), qr, qr.Bounds(), xdraw.Src, nil)
		dc.DrawImageAnchored(scaled, int(w/2), int(h/2), 0.5, 0.5)
	}

	return r.downscale(dc.Image())
}

// downscale resolves the supersampled canvas to the output size with a
// Catmull-Rom kernel.
func (r *Renderer) downscale(src image.Image) *image.RGBA {
	var out *image.RGBA
	if r.Pool != nil {
		out = r.Pool.Get(image.Rect(0, 0, r.W, r.H))
	} else {
		out = image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	}
	xdraw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return out
}

// drawNarration paints word-wrapped narration in a semi-opaque box
// anchored to the bottom of the frame.
func drawNarration(dc *gg.Context, text string, w, h float64) {
	boxW := w * 0.86
	boxH := h * 0.16
	x := (w - boxW) / 2
	y := h - boxH - h*0.03

	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, h*0.02)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringWrapped(text, x+boxW/2, y+boxH/2, 0.5, 0.5, boxW*0.94, 1.4, gg.AlignCenter)
}
