package export

import (
	"fmt"

	"github.com/ivlev/story2video/internal/system"
)

// Codec is the negotiated encoding plan for one export.
type Codec struct {
	Format       string // container: webm | mp4 | gif
	VideoEncoder string
	AudioEncoder string // empty when the container carries no audio
	Muxer        string
}

// encoder preference ladders, best first.
var (
	mp4Encoders  = []string{"libx264", "h264_videotoolbox", "h264_nvenc"}
	webmEncoders = []string{"libvpx-vp9", "libvpx"}
	mp4Audio     = []string{"aac"}
	webmAudio    = []string{"libopus", "libvorbis"}
)

// Negotiate picks encoders for the requested format. When the format
// cannot be produced on this host it falls back to webm and reports
// fellBack=true so the caller can surface it as a progress note. An
// error means not even the fallback is available.
func Negotiate(sup system.Support, format string) (Codec, bool, error) {
	c, err := negotiateFormat(sup, format)
	if err == nil {
		return c, false, nil
	}
	if format == "webm" {
		return Codec{}, false, err
	}
	c, fbErr := negotiateFormat(sup, "webm")
	if fbErr != nil {
		return Codec{}, false, err
	}
	return c, true, nil
}

func negotiateFormat(sup system.Support, format string) (Codec, error) {
	switch format {
	case "mp4":
		return pickCodec(sup, format, "mp4", mp4Encoders, mp4Audio)
	case "webm":
		return pickCodec(sup, format, "webm", webmEncoders, webmAudio)
	case "gif":
		if !sup.HasMuxer("gif") {
			return Codec{}, &EncoderError{Op: "negotiate", Err: fmt.Errorf("gif muxer unavailable")}
		}
		return Codec{Format: "gif", VideoEncoder: "gif", Muxer: "gif"}, nil
	default:
		return Codec{}, &EncoderError{Op: "negotiate", Err: fmt.Errorf("unknown format %q", format)}
	}
}

func pickCodec(sup system.Support, format, muxer string, video, audio []string) (Codec, error) {
	if !sup.HasMuxer(muxer) {
		return Codec{}, &EncoderError{Op: "negotiate", Err: fmt.Errorf("%s muxer unavailable", muxer)}
	}
	c := Codec{Format: format, Muxer: muxer}
	for _, name := range video {
		if sup.HasEncoder(name) {
			c.VideoEncoder = name
			break
		}
	}
	if c.VideoEncoder == "" {
		return Codec{}, &EncoderError{Op: "negotiate", Err: fmt.Errorf("no %s video encoder available", format)}
	}
	for _, name := range audio {
		if sup.HasEncoder(name) {
			c.AudioEncoder = name
			break
		}
	}
	return c, nil
}
