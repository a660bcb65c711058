// Package export runs the full storyboard-to-video pipeline: codec
// negotiation, frame rendering, audio synthesis and ffmpeg encoding,
// with progress reporting throughout.
package export

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/story2video/internal/clip"
	"github.com/ivlev/story2video/internal/config"
	"github.com/ivlev/story2video/internal/lipsync"
	"github.com/ivlev/story2video/internal/rasterizer"
	"github.com/ivlev/story2video/internal/scene"
	"github.com/ivlev/story2video/internal/synth"
	"github.com/ivlev/story2video/internal/system"
)

const (
	audioSampleRate  = 44100
	narrationWPM     = 150
	endCardSeconds   = 1.5
	renderPercentCap = 90.0
)

// sceneAmbience maps background ids to the ambience bed played under
// the scene. Backgrounds without an entry stay quiet.
var sceneAmbience = map[string]string{
	"beach":  "waves",
	"forest": "birds",
	"meadow": "crickets",
	"night":  "night",
	"space":  "wind",
	"castle": "wind",
}

// PaceFunc waits between frames. The default real-time pace sleeps for
// the frame interval; tests substitute an instant pace.
type PaceFunc func(ctx context.Context, interval time.Duration) error

func defaultPace(ctx context.Context, interval time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(interval):
		return nil
	}
}

// Result summarizes a finished export.
type Result struct {
	JobID      string
	OutputPath string
	Format     string
	Frames     int
	DurationMs float64
	FellBack   bool
}

// Exporter renders a storyboard and encodes it to video. Zero values of
// Sink, Pace and NewEngine are filled by New; tests override them.
type Exporter struct {
	Support system.Support
	Sink    FrameSink
	Pace    PaceFunc
	TempDir string // defaults to the system temp dir
	Seed    int64

	// NewEngine builds the audio engine for one export. The default
	// mixes into an offline PCM buffer; tests substitute an engine over
	// a Recorder backend.
	NewEngine func() *synth.Engine

	log  zerolog.Logger
	pool *system.FramePool
}

// New creates an exporter using the real ffmpeg sink and real-time
// frame pacing.
func New(sup system.Support, log zerolog.Logger) *Exporter {
	e := &Exporter{
		Support: sup,
		Sink:    NewFFmpegSink(),
		Pace:    defaultPace,
		log:     log,
		pool:    system.NewFramePool(),
	}
	e.NewEngine = func() *synth.Engine {
		return synth.NewEngine(synth.NewPCM(audioSampleRate), e.Seed, e.log)
	}
	return e
}

// Export runs the whole pipeline for one storyboard. Progress callbacks
// arrive in phase order; the error phase is reported before a non-nil
// error is returned. Audio trouble downgrades to a silent export and is
// never fatal.
func (e *Exporter) Export(ctx context.Context, sb *scene.Storyboard, clips map[string]*clip.Clip, opts config.ExportOptions, onProgress ProgressFunc) (Result, error) {
	jobID := uuid.NewString()
	report := func(p Progress) {
		p.JobID = jobID
		p.TotalScenes = len(sb.Scenes)
		if onProgress != nil {
			onProgress(p)
		}
	}
	fail := func(err error) (Result, error) {
		report(Progress{Phase: PhaseError, Message: err.Error()})
		return Result{JobID: jobID}, err
	}

	report(Progress{Phase: PhasePreparing})

	if err := opts.ApplyAspectPreset(); err != nil {
		return fail(err)
	}
	if err := opts.Validate(); err != nil {
		return fail(err)
	}
	if err := sb.Validate(); err != nil {
		return fail(err)
	}
	if len(sb.Scenes) == 0 {
		return fail(fmt.Errorf("storyboard has no scenes"))
	}

	codec, fellBack, err := Negotiate(e.Support, opts.Format)
	if err != nil {
		return fail(err)
	}
	if fellBack {
		e.log.Warn().Str("requested", opts.Format).Msg("format unavailable, falling back to webm")
		report(Progress{Phase: PhasePreparing,
			Message: fmt.Sprintf("%s not supported on this host, exporting webm instead", opts.Format)})
		opts.OutputPath = replaceExt(opts.OutputPath, ".webm")
		opts.Format = "webm"
	}

	if warn, err := system.CheckMemoryBudget(opts.Width, opts.Height, 4); err == nil && warn != "" {
		e.log.Warn().Msg(warn)
	}

	tempDir, err := os.MkdirTemp(e.TempDir, "story2video-")
	if err != nil {
		return fail(err)
	}
	defer os.RemoveAll(tempDir)

	// Audio preparation. Anything that goes wrong here means a silent
	// export, not a failed one.
	includeAudio := opts.IncludeAudio && codec.Format != "gif"
	if includeAudio && codec.AudioEncoder == "" {
		includeAudio = false
		e.log.Warn().Msg("no audio encoder available, exporting silent video")
		report(Progress{Phase: PhasePreparing, Message: "audio unavailable, exporting silent video"})
	}
	var engine *synth.Engine
	if includeAudio {
		engine = e.NewEngine()
		scheduleSoundtrack(engine, sb)
	}

	frameInterval := time.Second / time.Duration(opts.FPS)
	frameDeltaMs := 1000.0 / float64(opts.FPS)
	totalFrames := 0
	for i := range sb.Scenes {
		totalFrames += frameCount(sb.Scenes[i].DurationMs, opts.FPS)
	}
	shareURL := opts.ShareURL
	if shareURL == "" {
		shareURL = sb.ShareURL
	}
	endCardFrames := 0
	if shareURL != "" {
		endCardFrames = int(math.Ceil(endCardSeconds * float64(opts.FPS)))
		totalFrames += endCardFrames
	}

	videoPath := opts.OutputPath
	if includeAudio {
		videoPath = filepath.Join(tempDir, "video."+opts.Format)
	}
	if err := e.Sink.Start(ctx, videoPath, opts.Width, opts.Height, opts.FPS, codec, opts.Quality); err != nil {
		return fail(err)
	}
	sinkOpen := true
	closeSink := func() error {
		if !sinkOpen {
			return nil
		}
		sinkOpen = false
		return e.Sink.Close()
	}
	abort := func(err error) (Result, error) {
		if engine != nil {
			engine.Stop()
		}
		closeSink()
		os.Remove(videoPath)
		return fail(err)
	}

	renderer := rasterizer.New(opts.Width, opts.Height)
	renderer.Pool = e.pool

	framesDone := 0
	elapsed := time.Duration(0)

	// Rendering and encoding overlap: the render goroutine fills a small
	// frame queue while the writer streams it into the sink.
	frames := make(chan *image.RGBA, 2)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for frame := range frames {
			if err := e.Sink.WriteFrame(frame); err != nil {
				return err
			}
			e.pool.Put(frame)
		}
		return nil
	})
	g.Go(func() error {
		defer close(frames)
		for si := range sb.Scenes {
			sc := &sb.Scenes[si]
			count := frameCount(sc.DurationMs, opts.FPS)
			narration := lipsync.Generate(sc.Narration, sc.DurationMs, narrationWPM)
			players := make([]*clip.Player, len(sc.Characters))
			for ci := range sc.Characters {
				players[ci] = clip.NewPlayer(sc.Characters[ci].RigID, clips[sc.Characters[ci].AnimationID])
			}

			for i := 0; i < count; i++ {
				if framesDone > 0 {
					if err := e.Pace(gctx, frameInterval); err != nil {
						return err
					}
				} else if err := gctx.Err(); err != nil {
					return err
				}

				tMs := float64(i) * frameDeltaMs
				poses := samplePoses(sc, players, i, frameDeltaMs, narration.ShapeAt(tMs))

				frame := renderer.RenderFrame(sc, float64(i)/float64(count), poses)
				select {
				case frames <- frame:
				case <-gctx.Done():
					return gctx.Err()
				}

				elapsed += frameInterval
				if engine != nil {
					engine.Run(elapsed)
				}

				framesDone++
				report(Progress{
					Phase:        PhaseRendering,
					Percent:      renderPercentCap * float64(framesDone) / float64(totalFrames),
					CurrentScene: si + 1,
				})
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return abort(err)
	}

	if endCardFrames > 0 {
		frame, err := e.renderEndCard(renderer, sb.Title, shareURL)
		if err != nil {
			return abort(err)
		}
		for i := 0; i < endCardFrames; i++ {
			if err := e.Pace(ctx, frameInterval); err != nil {
				return abort(err)
			}
			if err := e.Sink.WriteFrame(frame); err != nil {
				return abort(err)
			}
			framesDone++
			report(Progress{
				Phase:        PhaseRendering,
				Percent:      renderPercentCap * float64(framesDone) / float64(totalFrames),
				CurrentScene: len(sb.Scenes),
			})
		}
		e.pool.Put(frame)
	}

	report(Progress{Phase: PhaseEncoding, Percent: renderPercentCap, CurrentScene: len(sb.Scenes)})
	if err := closeSink(); err != nil {
		return abort(err)
	}

	if includeAudio {
		if err := e.finalizeAudio(ctx, engine.Backend(), tempDir, videoPath, opts.OutputPath, codec); err != nil {
			e.log.Warn().Err(err).Msg("audio finalize failed, exporting silent video")
			report(Progress{Phase: PhaseEncoding, Percent: 95,
				Message: "audio unavailable, exporting silent video"})
			if err := copyFile(videoPath, opts.OutputPath); err != nil {
				return fail(err)
			}
		}
	}

	report(Progress{Phase: PhaseComplete, Percent: 100, CurrentScene: len(sb.Scenes)})
	return Result{
		JobID:      jobID,
		OutputPath: opts.OutputPath,
		Format:     opts.Format,
		Frames:     framesDone,
		DurationMs: float64(framesDone) * frameDeltaMs,
		FellBack:   fellBack,
	}, nil
}

// frameCount is the frame total for a scene of the given length.
func frameCount(durationMs float64, fps int) int {
	return int(math.Ceil(durationMs / 1000.0 * float64(fps)))
}

// scheduleSoundtrack queues every scene's speech rhythm, mood bed and
// ambience into the engine before rendering starts. The sample clock
// then realizes them as the render loop advances.
func scheduleSoundtrack(e *synth.Engine, sb *scene.Storyboard) {
	offset := time.Duration(0)
	for i := range sb.Scenes {
		sc := &sb.Scenes[i]
		window := time.Duration(sc.DurationMs * float64(time.Millisecond))
		if sc.Narration != "" {
			e.ScheduleSpeech(sc.Narration, window, offset)
		}
		if sc.Mood != "" {
			e.ScheduleMoodBed(sc.Mood, offset, offset+window)
		}
		if bed, ok := sceneAmbience[sc.BackgroundID]; ok {
			e.ScheduleAmbience(bed, offset, offset+window)
		}
		offset += window
	}
}

// samplePoses advances every character's clip player by one frame and
// maps the body transform to a render pose. A clip's own mouth-shape
// track wins over the narration-driven shape.
func samplePoses(sc *scene.SceneRenderData, players []*clip.Player, frame int, frameDeltaMs float64, narrShape lipsync.MouthShape) map[string]rasterizer.Pose {
	poses := make(map[string]rasterizer.Pose, len(players))
	for ci, p := range players {
		var tr clip.Transform
		var transforms map[string]clip.Transform
		if frame == 0 {
			transforms = p.Sample()
		} else {
			transforms = p.Advance(frameDeltaMs)
		}
		if t, ok := transforms["body"]; ok {
			tr = t
		} else {
			tr = clip.IdentityTransform()
		}

		mouth := narrShape
		if tr.MouthShape != "" {
			mouth = lipsync.MouthShape(tr.MouthShape)
		}
		poses[sc.Characters[ci].RigID] = rasterizer.Pose{
			Offset:   tr.Position,
			Rotation: tr.Rotation,
			Scale:    tr.Scale,
			Opacity:  tr.Opacity,
			Mouth:    mouth,
		}
	}
	return poses
}

func (e *Exporter) renderEndCard(r *rasterizer.Renderer, title, shareURL string) (*image.RGBA, error) {
	qr, err := qrcode.New(shareURL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("share qr: %w", err)
	}
	return r.RenderEndCard(title, qr.Image(256)), nil
}

// finalizeAudio renders the mixed PCM to WAV and muxes it under the
// video stream. A backend that cannot render WAV lands in the caller's
// silent-video path.
func (e *Exporter) finalizeAudio(ctx context.Context, backend synth.Backend, tempDir, videoPath, outPath string, codec Codec) error {
	pcm, ok := backend.(*synth.PCM)
	if !ok {
		return fmt.Errorf("mix destination %T cannot render WAV", backend)
	}
	wavPath := filepath.Join(tempDir, "audio.wav")
	f, err := os.Create(wavPath)
	if err != nil {
		return err
	}
	if err := pcm.EncodeWAV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return MuxAudio(ctx, videoPath, wavPath, outPath, codec)
}

func replaceExt(path, ext string) string {
	if path == "" {
		return path
	}
	old := filepath.Ext(path)
	return strings.TrimSuffix(path, old) + ext
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
