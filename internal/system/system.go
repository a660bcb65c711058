// Package system wraps the host-facing concerns of the pipeline: ffmpeg
// capability probing, file descriptor limits and memory preflight.
package system

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
)

// Support answers codec/container capability questions. The ffmpeg probe
// implements it for production; tests substitute a fixed table.
type Support interface {
	HasEncoder(name string) bool
	HasMuxer(name string) bool
}

// FFmpegSupport probes the local ffmpeg binary, caching the answer.
type FFmpegSupport struct {
	once     sync.Once
	encoders string
	muxers   string
	probeErr error
}

// NewFFmpegSupport creates a lazy prober.
func NewFFmpegSupport() *FFmpegSupport {
	return &FFmpegSupport{}
}

func (s *FFmpegSupport) probe() {
	s.once.Do(func() {
		out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
		if err != nil {
			s.probeErr = fmt.Errorf("ffmpeg probe failed: %w", err)
			return
		}
		s.encoders = string(out)

		out, err = exec.Command("ffmpeg", "-hide_banner", "-muxers").CombinedOutput()
		if err != nil {
			s.probeErr = fmt.Errorf("ffmpeg probe failed: %w", err)
			return
		}
		s.muxers = string(out)
	})
}

func (s *FFmpegSupport) HasEncoder(name string) bool {
	s.probe()
	return s.probeErr == nil && strings.Contains(s.encoders, " "+name+" ")
}

func (s *FFmpegSupport) HasMuxer(name string) bool {
	s.probe()
	return s.probeErr == nil && strings.Contains(s.muxers, " "+name+" ")
}

// ProbeErr returns the probe failure, if any. A missing ffmpeg makes
// every capability answer false; callers decide whether that is fatal.
func (s *FFmpegSupport) ProbeErr() error {
	s.probe()
	return s.probeErr
}

// InitResourceLimits raises the open file limit; long exports hold the
// encoder pipe, the audio scratch file and log files at once.
func InitResourceLimits() error {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return err
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
}

// CheckMemoryBudget estimates whether buffering frames of the given size
// fits in available memory and returns a human-readable warning when it
// looks tight. The pipeline only buffers a handful of frames, so this is
// advisory, never fatal.
func CheckMemoryBudget(width, height, inflightFrames int) (string, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "", err
	}
	need := uint64(width) * uint64(height) * 4 * uint64(inflightFrames)
	// Supersampled canvases quadruple the working set.
	need *= 4
	if need > vm.Available/2 {
		return fmt.Sprintf("frame buffers need ~%d MiB of %d MiB available; export may swap",
			need/1024/1024, vm.Available/1024/1024), nil
	}
	return "", nil
}
