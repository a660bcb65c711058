package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSinkArgsGifUsesPaletteFilter(t *testing.T) {
	args := buildSinkArgs("out.gif", 640, 360, 15, Codec{Format: "gif", VideoEncoder: "gif", Muxer: "gif"}, 0)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "palettegen")
	assert.Contains(t, joined, "paletteuse")
	assert.Contains(t, joined, "-video_size 640x360")
	assert.NotContains(t, joined, "yuv420p")
}

func TestBuildSinkArgsQualityDefaults(t *testing.T) {
	args := buildSinkArgs("out.webm", 1280, 720, 30,
		Codec{Format: "webm", VideoEncoder: "libvpx-vp9", Muxer: "webm"}, 0)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-c:v libvpx-vp9")
	assert.Contains(t, joined, "-crf 32")
	assert.Contains(t, joined, "-b:v 0")

	args = buildSinkArgs("out.mp4", 1280, 720, 30,
		Codec{Format: "mp4", VideoEncoder: "libx264", Muxer: "mp4"}, 18)
	joined = strings.Join(args, " ")
	assert.Contains(t, joined, "-crf 18")
	assert.Contains(t, joined, "-preset medium")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestEncoderErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := &EncoderError{Op: "start", Encoder: "libx264", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "libx264")
}
