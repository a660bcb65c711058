package synth

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// NodeID identifies a live synthesis node in the backend's arena. IDs are
// generation counters, never reused, so a sweep can't race a reschedule.
type NodeID uint64

// Backend is the shared mix destination. Generators connect voices with
// Play and never reset the destination while sounds are active; StopAll is
// the single arena sweep that ends everything still running.
type Backend interface {
	// Play schedules a voice starting at the given offset from the mix
	// origin. The node self-stops after the voice's declared duration.
	Play(v Voice, at time.Duration) NodeID
	// Advance moves the backend clock, retiring nodes whose stop time has
	// passed.
	Advance(now time.Duration)
	// StopAll stops and disconnects every still-running node.
	StopAll()
	// Live counts nodes that have been connected and not yet stopped.
	Live() int
}

// PCM is the production backend: an offline renderer mixing voices into a
// mono float buffer at a fixed sample rate. Rendering is deterministic,
// which keeps export output reproducible.
type PCM struct {
	mu         sync.Mutex
	sampleRate int
	master     float64
	mix        []float64
	nodes      map[NodeID]time.Duration // node -> scheduled stop
	nextID     NodeID
	clock      time.Duration
}

// NewPCM creates an offline mix destination at the given sample rate.
func NewPCM(sampleRate int) *PCM {
	return &PCM{
		sampleRate: sampleRate,
		master:     0.8,
		nodes:      make(map[NodeID]time.Duration),
	}
}

// SampleRate returns the backend's sample rate.
func (p *PCM) SampleRate() int { return p.sampleRate }

func (p *PCM) Play(v Voice, at time.Duration) NodeID {
	p.mu.Lock()
	defer p.mu.Unlock()

	samples := v.Render(p.sampleRate)
	offset := int(at.Seconds() * float64(p.sampleRate))
	if offset < 0 {
		offset = 0
	}
	if need := offset + len(samples); need > len(p.mix) {
		grown := make([]float64, need)
		copy(grown, p.mix)
		p.mix = grown
	}
	for i, s := range samples {
		p.mix[offset+i] += s * p.master
	}

	p.nextID++
	id := p.nextID
	p.nodes[id] = at + time.Duration(v.DurationMs()*float64(time.Millisecond))
	return id
}

func (p *PCM) Advance(now time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = now
	for id, stop := range p.nodes {
		if stop <= now {
			delete(p.nodes, id)
		}
	}
}

// StopAll sweeps the arena and truncates the mix at the current clock so
// no already-rendered tail keeps sounding past the stop instant.
func (p *PCM) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nodes = make(map[NodeID]time.Duration)
	cut := int(p.clock.Seconds() * float64(p.sampleRate))
	if cut >= 0 && cut < len(p.mix) {
		p.mix = p.mix[:cut]
	}
}

func (p *PCM) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.nodes)
}

// Duration is the rendered mix length.
func (p *PCM) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(float64(len(p.mix)) / float64(p.sampleRate) * float64(time.Second))
}

// EncodeWAV writes the mix as 16-bit mono PCM.
func (p *PCM) EncodeWAV(w io.WriteSeeker) error {
	p.mu.Lock()
	data := make([]int, len(p.mix))
	for i, s := range p.mix {
		// Soft clamp before quantizing; concurrent generators may sum hot.
		s = math.Max(-1, math.Min(1, s))
		data[i] = int(s * 32767)
	}
	rate := p.sampleRate
	p.mu.Unlock()

	enc := wav.NewEncoder(w, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// Recorder is a test backend recording node lifecycles instead of
// producing sound. Export cancellation tests assert Live()==0 after stop.
type Recorder struct {
	mu      sync.Mutex
	nodes   map[NodeID]time.Duration
	nextID  NodeID
	clock   time.Duration
	Played  []PlayedVoice
	Stopped int
}

// PlayedVoice records one Play call.
type PlayedVoice struct {
	Voice Voice
	At    time.Duration
}

// NewRecorder creates an empty recording backend.
func NewRecorder() *Recorder {
	return &Recorder{nodes: make(map[NodeID]time.Duration)}
}

func (r *Recorder) Play(v Voice, at time.Duration) NodeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.nodes[r.nextID] = at + time.Duration(v.DurationMs()*float64(time.Millisecond))
	r.Played = append(r.Played, PlayedVoice{Voice: v, At: at})
	return r.nextID
}

func (r *Recorder) Advance(now time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = now
	for id, stop := range r.nodes {
		if stop <= now {
			delete(r.nodes, id)
		}
	}
}

func (r *Recorder) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stopped += len(r.nodes)
	r.nodes = make(map[NodeID]time.Duration)
}

func (r *Recorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nodes)
}
