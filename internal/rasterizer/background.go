package rasterizer

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// drawBackground paints a vertical gradient plus a small fixed set of
// procedural decorations keyed by background id. Unknown ids get the
// plain gradient.
func drawBackground(dc *gg.Context, id string, w, h, progress float64) {
	top, bottom := backgroundPalette(id)
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, bottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	switch id {
	case "meadow":
		drawSun(dc, w*0.82, h*0.16, h*0.07)
		drawGround(dc, w, h, color.RGBA{92, 160, 70, 255})
		for i := 0; i < 7; i++ {
			fx := w * (0.08 + 0.13*float64(i))
			drawFlower(dc, fx, h*0.88, h*0.018, flowerColor(i))
		}
	case "forest":
		drawGround(dc, w, h, color.RGBA{60, 110, 52, 255})
		for i := 0; i < 5; i++ {
			fx := w * (0.1 + 0.2*float64(i))
			drawTree(dc, fx, h*0.82, h*0.22)
		}
	case "beach":
		drawSun(dc, w*0.78, h*0.14, h*0.08)
		drawWaves(dc, w, h, progress)
	case "space":
		drawStars(dc, w, h, 60, progress)
		dc.SetRGBA(0.85, 0.5, 0.3, 1)
		dc.DrawCircle(w*0.78, h*0.3, h*0.09)
		dc.Fill()
		dc.SetRGBA(0.95, 0.75, 0.45, 0.8)
		dc.DrawEllipse(w*0.78, h*0.3, h*0.16, h*0.025)
		dc.Fill()
	case "night":
		drawStars(dc, w, h, 40, progress)
		dc.SetRGBA(0.95, 0.95, 0.85, 1)
		dc.DrawCircle(w*0.2, h*0.18, h*0.06)
		dc.Fill()
		drawGround(dc, w, h, color.RGBA{30, 46, 40, 255})
	case "bedroom":
		drawWindow(dc, w*0.68, h*0.2, w*0.18, h*0.3)
		drawBed(dc, w*0.12, h*0.66, w*0.36, h*0.22)
	case "castle":
		drawGround(dc, w, h, color.RGBA{110, 120, 90, 255})
		drawTower(dc, w*0.16, h*0.78, w*0.1, h*0.42)
		drawTower(dc, w*0.74, h*0.78, w*0.1, h*0.42)
	case "city":
		for i := 0; i < 6; i++ {
			bw := w * 0.11
			bh := h * (0.3 + 0.12*math.Abs(math.Sin(float64(i)*1.7)))
			dc.SetRGBA(0.25, 0.28, 0.38, 1)
			dc.DrawRectangle(w*0.03+float64(i)*w*0.16, h*0.85-bh, bw, bh)
			dc.Fill()
		}
		drawGround(dc, w, h, color.RGBA{70, 72, 80, 255})
	}
}

func backgroundPalette(id string) (color.Color, color.Color) {
	switch id {
	case "meadow":
		return color.RGBA{120, 190, 240, 255}, color.RGBA{180, 225, 250, 255}
	case "forest":
		return color.RGBA{90, 150, 190, 255}, color.RGBA{150, 200, 170, 255}
	case "beach":
		return color.RGBA{110, 185, 235, 255}, color.RGBA{250, 230, 180, 255}
	case "space":
		return color.RGBA{8, 10, 32, 255}, color.RGBA{24, 18, 60, 255}
	case "night":
		return color.RGBA{16, 24, 56, 255}, color.RGBA{40, 52, 90, 255}
	case "bedroom":
		return color.RGBA{235, 215, 185, 255}, color.RGBA{210, 180, 150, 255}
	case "castle":
		return color.RGBA{150, 160, 200, 255}, color.RGBA{200, 200, 220, 255}
	case "city":
		return color.RGBA{250, 170, 110, 255}, color.RGBA{255, 210, 150, 255}
	default:
		return color.RGBA{140, 180, 220, 255}, color.RGBA{200, 220, 240, 255}
	}
}

func drawGround(dc *gg.Context, w, h float64, c color.RGBA) {
	dc.SetColor(c)
	dc.DrawRectangle(0, h*0.8, w, h*0.2)
	dc.Fill()
}

func drawSun(dc *gg.Context, x, y, r float64) {
	dc.SetRGBA(1, 0.85, 0.3, 1)
	dc.DrawCircle(x, y, r)
	dc.Fill()
	dc.SetRGBA(1, 0.85, 0.3, 0.35)
	dc.DrawCircle(x, y, r*1.5)
	dc.Fill()
}

func drawFlower(dc *gg.Context, x, y, r float64, c color.RGBA) {
	dc.SetRGBA(0.2, 0.5, 0.2, 1)
	dc.SetLineWidth(r * 0.5)
	dc.DrawLine(x, y, x, y+r*4)
	dc.Stroke()
	for i := 0; i < 5; i++ {
		a := float64(i) * 2 * math.Pi / 5
		dc.SetColor(c)
		dc.DrawCircle(x+math.Cos(a)*r, y+math.Sin(a)*r, r*0.8)
		dc.Fill()
	}
	dc.SetRGBA(1, 0.9, 0.3, 1)
	dc.DrawCircle(x, y, r*0.7)
	dc.Fill()
}

func flowerColor(i int) color.RGBA {
	palette := []color.RGBA{
		{235, 90, 120, 255},
		{250, 160, 70, 255},
		{170, 110, 220, 255},
		{250, 250, 250, 255},
	}
	return palette[i%len(palette)]
}

func drawTree(dc *gg.Context, x, baseY, size float64) {
	dc.SetRGBA(0.42, 0.28, 0.16, 1)
	dc.DrawRectangle(x-size*0.07, baseY-size*0.4, size*0.14, size*0.4)
	dc.Fill()
	dc.SetRGBA(0.16, 0.42, 0.2, 1)
	dc.DrawCircle(x, baseY-size*0.62, size*0.32)
	dc.Fill()
	dc.DrawCircle(x-size*0.22, baseY-size*0.45, size*0.24)
	dc.Fill()
	dc.DrawCircle(x+size*0.22, baseY-size*0.45, size*0.24)
	dc.Fill()
}

// drawWaves paints two drifting sine bands; progress drives the drift so
// the water moves over the scene.
func drawWaves(dc *gg.Context, w, h, progress float64) {
	for band := 0; band < 2; band++ {
		base := h * (0.78 + 0.08*float64(band))
		amp := h * 0.015
		phase := progress*2*math.Pi + float64(band)*1.3
		dc.MoveTo(0, base)
		for x := 0.0; x <= w; x += w / 60 {
			dc.LineTo(x, base+amp*math.Sin(x/w*6*math.Pi+phase))
		}
		dc.LineTo(w, h)
		dc.LineTo(0, h)
		dc.ClosePath()
		dc.SetRGBA(0.2, 0.45+0.1*float64(band), 0.8, 0.85)
		dc.Fill()
	}
}

// drawStars scatters deterministic pseudo-random stars; a few of them
// twinkle with progress.
func drawStars(dc *gg.Context, w, h float64, count int, progress float64) {
	for i := 0; i < count; i++ {
		fx := math.Mod(float64(i)*0.6180339887, 1)
		fy := math.Mod(float64(i)*0.7548776662, 1) * 0.75
		alpha := 0.6
		if i%5 == 0 {
			alpha = 0.3 + 0.5*math.Abs(math.Sin(progress*2*math.Pi+float64(i)))
		}
		dc.SetRGBA(1, 1, 0.92, alpha)
		dc.DrawCircle(fx*w, fy*h, h*0.004)
		dc.Fill()
	}
}

func drawWindow(dc *gg.Context, x, y, w, h float64) {
	dc.SetRGBA(0.45, 0.3, 0.2, 1)
	dc.DrawRectangle(x-w*0.04, y-h*0.04, w*1.08, h*1.08)
	dc.Fill()
	dc.SetRGBA(0.55, 0.75, 0.95, 1)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	dc.SetRGBA(0.45, 0.3, 0.2, 1)
	dc.SetLineWidth(h * 0.03)
	dc.DrawLine(x+w/2, y, x+w/2, y+h)
	dc.DrawLine(x, y+h/2, x+w, y+h/2)
	dc.Stroke()
}

func drawBed(dc *gg.Context, x, y, w, h float64) {
	dc.SetRGBA(0.5, 0.32, 0.2, 1)
	dc.DrawRoundedRectangle(x, y, w, h, h*0.12)
	dc.Fill()
	dc.SetRGBA(0.85, 0.3, 0.35, 1)
	dc.DrawRoundedRectangle(x+w*0.03, y+h*0.1, w*0.94, h*0.5, h*0.1)
	dc.Fill()
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawRoundedRectangle(x+w*0.06, y+h*0.05, w*0.26, h*0.3, h*0.08)
	dc.Fill()
}

func drawTower(dc *gg.Context, x, baseY, w, h float64) {
	dc.SetRGBA(0.6, 0.6, 0.68, 1)
	dc.DrawRectangle(x, baseY-h, w, h)
	dc.Fill()
	dc.MoveTo(x-w*0.15, baseY-h)
	dc.LineTo(x+w/2, baseY-h-w*0.9)
	dc.LineTo(x+w*1.15, baseY-h)
	dc.ClosePath()
	dc.SetRGBA(0.7, 0.25, 0.3, 1)
	dc.Fill()
}
