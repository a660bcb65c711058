package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
)

// FrameSink consumes rendered frames and produces a video file. The
// ffmpeg sink is the production implementation; tests substitute a
// counting sink.
type FrameSink interface {
	Start(ctx context.Context, path string, w, h, fps int, c Codec, quality int) error
	WriteFrame(img *image.RGBA) error
	Close() error
}

// FFmpegSink streams raw RGBA frames into an ffmpeg child process over
// stdin.
type FFmpegSink struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stderr  bytes.Buffer
	encoder string
}

func NewFFmpegSink() *FFmpegSink {
	return &FFmpegSink{}
}

func (s *FFmpegSink) Start(ctx context.Context, path string, w, h, fps int, c Codec, quality int) error {
	args := buildSinkArgs(path, w, h, fps, c, quality)
	s.encoder = c.VideoEncoder
	s.cmd = exec.CommandContext(ctx, "ffmpeg", args...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return &EncoderError{Op: "stdin pipe", Encoder: s.encoder, Err: err}
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return &EncoderError{Op: "start", Encoder: s.encoder, Err: err}
	}
	return nil
}

func (s *FFmpegSink) WriteFrame(img *image.RGBA) error {
	if _, err := s.stdin.Write(img.Pix); err != nil {
		return &EncoderError{Op: "write frame", Encoder: s.encoder, Err: err}
	}
	return nil
}

func (s *FFmpegSink) Close() error {
	if s.cmd == nil {
		return nil
	}
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return &EncoderError{Op: "finish", Encoder: s.encoder,
			Err: fmt.Errorf("%w: %s", err, s.stderr.String())}
	}
	return nil
}

func buildSinkArgs(path string, w, h, fps int, c Codec, quality int) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
	}

	if c.Format == "gif" {
		// Single-pass palette: ffmpeg buffers the stream for palettegen.
		args = append(args,
			"-filter_complex", "split[a][b];[a]palettegen[p];[b][p]paletteuse",
			"-f", "gif", path)
		return args
	}

	args = append(args, "-pix_fmt", "yuv420p", "-c:v", c.VideoEncoder)

	switch c.VideoEncoder {
	case "libvpx-vp9", "libvpx":
		if quality <= 0 {
			quality = 32
		}
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-b:v", "0")
	case "h264_videotoolbox":
		if quality <= 0 {
			quality = 60
		}
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		if quality <= 0 {
			quality = 23
		}
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		if quality <= 0 {
			quality = 23
		}
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, path)
	return args
}

// MuxAudio remuxes the video stream with a WAV track into the final
// container, re-encoding only the audio.
func MuxAudio(ctx context.Context, videoPath, audioPath, outPath string, c Codec) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", c.AudioEncoder,
		"-b:a", "128k",
		outPath,
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return &EncoderError{Op: "mux audio", Encoder: c.AudioEncoder,
			Err: fmt.Errorf("%w: %s", err, string(out))}
	}
	return nil
}
