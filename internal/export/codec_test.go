package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSupport is a fixed capability table standing in for the ffmpeg
// probe.
type fakeSupport struct {
	encoders map[string]bool
	muxers   map[string]bool
}

func (f *fakeSupport) HasEncoder(name string) bool { return f.encoders[name] }
func (f *fakeSupport) HasMuxer(name string) bool   { return f.muxers[name] }

func fullSupport() *fakeSupport {
	return &fakeSupport{
		encoders: map[string]bool{
			"libx264": true, "libvpx-vp9": true, "libvpx": true,
			"aac": true, "libopus": true, "libvorbis": true, "gif": true,
		},
		muxers: map[string]bool{"mp4": true, "webm": true, "gif": true},
	}
}

func webmOnlySupport() *fakeSupport {
	return &fakeSupport{
		encoders: map[string]bool{"libvpx-vp9": true, "libopus": true},
		muxers:   map[string]bool{"webm": true},
	}
}

func TestNegotiatePreferenceLadder(t *testing.T) {
	c, fellBack, err := Negotiate(fullSupport(), "mp4")
	require.NoError(t, err)
	assert.False(t, fellBack)
	assert.Equal(t, "libx264", c.VideoEncoder)
	assert.Equal(t, "aac", c.AudioEncoder)
	assert.Equal(t, "mp4", c.Muxer)

	c, _, err = Negotiate(fullSupport(), "webm")
	require.NoError(t, err)
	assert.Equal(t, "libvpx-vp9", c.VideoEncoder)
	assert.Equal(t, "libopus", c.AudioEncoder)
}

func TestNegotiateSecondChoiceEncoder(t *testing.T) {
	sup := fullSupport()
	sup.encoders["libvpx-vp9"] = false
	c, _, err := Negotiate(sup, "webm")
	require.NoError(t, err)
	assert.Equal(t, "libvpx", c.VideoEncoder)
}

func TestNegotiateFallbackToWebm(t *testing.T) {
	c, fellBack, err := Negotiate(webmOnlySupport(), "mp4")
	require.NoError(t, err)
	assert.True(t, fellBack)
	assert.Equal(t, "webm", c.Format)
	assert.Equal(t, "libvpx-vp9", c.VideoEncoder)
}

func TestNegotiateGif(t *testing.T) {
	c, fellBack, err := Negotiate(fullSupport(), "gif")
	require.NoError(t, err)
	assert.False(t, fellBack)
	assert.Equal(t, "gif", c.Format)
	assert.Empty(t, c.AudioEncoder)
}

func TestNegotiateNothingAvailable(t *testing.T) {
	empty := &fakeSupport{encoders: map[string]bool{}, muxers: map[string]bool{}}
	_, _, err := Negotiate(empty, "mp4")
	require.Error(t, err)
	var encErr *EncoderError
	assert.ErrorAs(t, err, &encErr)
}

func TestNegotiateMissingAudioEncoderIsNotFatal(t *testing.T) {
	sup := fullSupport()
	sup.encoders["libopus"] = false
	sup.encoders["libvorbis"] = false
	c, _, err := Negotiate(sup, "webm")
	require.NoError(t, err)
	assert.Empty(t, c.AudioEncoder)
}
