package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/story2video/internal/clip"
	"github.com/ivlev/story2video/internal/config"
	"github.com/ivlev/story2video/internal/export"
	"github.com/ivlev/story2video/internal/logging"
	"github.com/ivlev/story2video/internal/scene"
	"github.com/ivlev/story2video/internal/system"
)

func main() {
	system.InitResourceLimits()

	storyboardPtr := flag.String("storyboard", "", "Path to the storyboard YAML")
	clipsPtr := flag.String("clips", "", "Optional clip library YAML overriding the built-in animations")
	outputPtr := flag.String("output", "", "Output video path (if empty, generated in output/)")
	formatPtr := flag.String("format", "webm", "Output format: webm, mp4, gif")
	fpsPtr := flag.Int("fps", 30, "Frames per second")
	presetPtr := flag.String("preset", "", "Canvas preset: 16:9, 9:16 (Shorts/TikTok), 1:1")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto; CRF for libx264/vpx)")
	noAudioPtr := flag.Bool("no-audio", false, "Export without the synthesized soundtrack")
	shareURLPtr := flag.String("share-url", "", "Adds a QR end card linking to this URL")
	verbosePtr := flag.Bool("verbose", false, "Debug logging")
	flag.Parse()

	if *storyboardPtr == "" {
		log.Fatalf("[-] Error: -storyboard is required")
	}

	logger := logging.Default(*verbosePtr)

	sb, err := scene.LoadStoryboard(*storyboardPtr)
	if err != nil {
		log.Fatalf("[-] Error loading storyboard: %v", err)
	}
	if *shareURLPtr != "" {
		sb.ShareURL = *shareURLPtr
	}

	clips := clip.Defaults()
	if *clipsPtr != "" {
		lib, err := clip.LoadLibrary(*clipsPtr)
		if err != nil {
			log.Fatalf("[-] Error loading clip library: %v", err)
		}
		for id, c := range lib.ByID() {
			clips[id] = c
		}
	}

	opts := config.DefaultOptions()
	opts.Format = *formatPtr
	opts.FPS = *fpsPtr
	opts.Quality = *qualityPtr
	opts.AspectRatio = *presetPtr
	opts.IncludeAudio = !*noAudioPtr
	opts.ShareURL = sb.ShareURL

	opts.OutputPath = *outputPtr
	if opts.OutputPath == "" {
		os.MkdirAll("output", 0755)
		base := strings.TrimSuffix(filepath.Base(*storyboardPtr), filepath.Ext(*storyboardPtr))
		cleanName := strings.ReplaceAll(base, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		opts.OutputPath = filepath.Join("output", fmt.Sprintf("%s_%s.%s", cleanName, timestamp, opts.Format))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := export.New(system.NewFFmpegSupport(), logger)

	lastPercent := -1.0
	onProgress := func(p export.Progress) {
		if p.Message != "" {
			fmt.Printf("[!] %s\n", p.Message)
		}
		if p.Phase == export.PhaseRendering && p.Percent-lastPercent >= 5 {
			lastPercent = p.Percent
			fmt.Printf("[*] Rendering scene %d/%d: %.0f%%\n", p.CurrentScene, p.TotalScenes, p.Percent)
		}
		if p.Phase == export.PhaseEncoding && p.Message == "" {
			fmt.Printf("[*] Encoding...\n")
		}
	}

	res, err := exporter.Export(ctx, sb, clips, opts, onProgress)
	if err != nil {
		log.Fatalf("[-] Export failed: %v", err)
	}

	fmt.Printf("[+++] Done! %d frames (%.1fs) -> %s\n",
		res.Frames, res.DurationMs/1000, res.OutputPath)
}
