// Package config holds the export configuration handed to the pipeline.
package config

import "fmt"

// ExportOptions configures one export run.
type ExportOptions struct {
	Format       string // webm | mp4 | gif
	Quality      int    // encoder-dependent; 0 picks a default
	FPS          int
	Width        int
	Height       int
	IncludeAudio bool
	AspectRatio  string // optional named preset: 16:9, 9:16, 1:1
	ShareURL     string // optional; adds a QR end card when set
	OutputPath   string
}

// aspectPresets maps named aspect ratios to canvas sizes.
var aspectPresets = map[string][2]int{
	"16:9": {1280, 720},
	"9:16": {720, 1280},
	"1:1":  {1080, 1080},
}

// DefaultOptions returns the stock export configuration.
func DefaultOptions() ExportOptions {
	return ExportOptions{
		Format:       "webm",
		FPS:          30,
		Width:        1280,
		Height:       720,
		IncludeAudio: true,
	}
}

// ApplyAspectPreset resolves a named aspect ratio into Width/Height.
// An empty preset leaves the explicit size untouched.
func (o *ExportOptions) ApplyAspectPreset() error {
	if o.AspectRatio == "" {
		return nil
	}
	size, ok := aspectPresets[o.AspectRatio]
	if !ok {
		return fmt.Errorf("unknown aspect ratio preset %q", o.AspectRatio)
	}
	o.Width, o.Height = size[0], size[1]
	return nil
}

// Validate rejects option sets the pipeline cannot honor and rounds odd
// canvas sizes up to the even dimensions encoders require.
func (o *ExportOptions) Validate() error {
	switch o.Format {
	case "webm", "mp4", "gif":
	default:
		return fmt.Errorf("unsupported format %q (want webm, mp4 or gif)", o.Format)
	}
	if o.FPS <= 0 || o.FPS > 120 {
		return fmt.Errorf("fps out of range: %d", o.FPS)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", o.Width, o.Height)
	}
	if o.Width%2 != 0 {
		o.Width++
	}
	if o.Height%2 != 0 {
		o.Height++
	}
	return nil
}
