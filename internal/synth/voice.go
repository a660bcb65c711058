// Package synth is a procedural audio engine built from oscillator
// primitives. Short-lived voices (tone or filtered noise plus a gain
// envelope) are scheduled onto a shared mix destination and self-stop
// after their declared duration. Three generators share that discipline:
// speech-rhythm tones for narration, mood-based looping music and
// category-based effects/ambience.
package synth

import (
	"math"
	"math/rand"
)

// Waveform selects the tone source's wave shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// Envelope is a linear attack/decay/sustain/release gain shape. The
// voice's declared duration is the sum of the four stages.
type Envelope struct {
	AttackMs  float64
	DecayMs   float64
	SustainMs float64
	ReleaseMs float64

	Peak         float64 // gain at the end of attack
	SustainLevel float64 // gain held through sustain
}

// DurationMs is the voice lifetime implied by the envelope.
func (e Envelope) DurationMs() float64 {
	return e.AttackMs + e.DecayMs + e.SustainMs + e.ReleaseMs
}

func (e Envelope) gainAt(tMs float64) float64 {
	switch {
	case tMs < 0:
		return 0
	case tMs < e.AttackMs:
		if e.AttackMs == 0 {
			return e.Peak
		}
		return e.Peak * tMs / e.AttackMs
	case tMs < e.AttackMs+e.DecayMs:
		if e.DecayMs == 0 {
			return e.SustainLevel
		}
		t := (tMs - e.AttackMs) / e.DecayMs
		return e.Peak + (e.SustainLevel-e.Peak)*t
	case tMs < e.AttackMs+e.DecayMs+e.SustainMs:
		return e.SustainLevel
	case tMs < e.DurationMs():
		if e.ReleaseMs == 0 {
			return 0
		}
		t := (tMs - e.AttackMs - e.DecayMs - e.SustainMs) / e.ReleaseMs
		return e.SustainLevel * (1 - t)
	default:
		return 0
	}
}

// pluck is the fast attack/decay shape used for percussive tones.
func pluck(attackMs, decayMs, peak float64) Envelope {
	return Envelope{AttackMs: attackMs, ReleaseMs: decayMs, Peak: peak, SustainLevel: peak}
}

// LFO modulates the tone frequency (vibrato).
type LFO struct {
	RateHz  float64
	DepthHz float64
}

// FilterKind selects the one-pole filter topology applied to noise.
type FilterKind int

const (
	LowPass FilterKind = iota
	HighPass
	BandPass
)

// Filter shapes a noise source.
type Filter struct {
	Kind     FilterKind
	CutoffHz float64
}

// Voice is a renderable synthesis unit with a declared lifetime.
type Voice interface {
	// DurationMs is the scheduled stop time relative to the start.
	DurationMs() float64
	// Render produces the voice's mono samples at the given rate.
	Render(sampleRate int) []float64
}

// Tone is an oscillator + envelope voice, optionally sweeping from FreqHz
// to EndFreqHz over its lifetime and optionally vibrato-modulated.
type Tone struct {
	Wave      Waveform
	FreqHz    float64
	EndFreqHz float64 // 0 means no sweep
	Gain      float64
	Env       Envelope
	Vibrato   *LFO
}

func (t Tone) DurationMs() float64 { return t.Env.DurationMs() }

func (t Tone) Render(sampleRate int) []float64 {
	n := int(math.Ceil(t.DurationMs() / 1000 * float64(sampleRate)))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	end := t.EndFreqHz
	if end == 0 {
		end = t.FreqHz
	}
	dur := t.DurationMs()
	phase := 0.0
	for i := 0; i < n; i++ {
		tMs := float64(i) / float64(sampleRate) * 1000
		freq := t.FreqHz + (end-t.FreqHz)*(tMs/dur)
		if t.Vibrato != nil {
			freq += t.Vibrato.DepthHz * math.Sin(2*math.Pi*t.Vibrato.RateHz*tMs/1000)
		}
		phase += 2 * math.Pi * freq / float64(sampleRate)
		out[i] = t.Gain * t.Env.gainAt(tMs) * sampleWave(t.Wave, phase)
	}
	return out
}

// Noise is a filtered noise burst + envelope voice. The seed makes the
// burst reproducible so identical schedules produce identical mixes.
type Noise struct {
	Gain   float64
	Env    Envelope
	Filter *Filter
	Seed   int64
}

func (v Noise) DurationMs() float64 { return v.Env.DurationMs() }

func (v Noise) Render(sampleRate int) []float64 {
	n := int(math.Ceil(v.DurationMs() / 1000 * float64(sampleRate)))
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(v.Seed))
	out := make([]float64, n)
	low, band := 0.0, 0.0
	alpha := 1.0
	if v.Filter != nil {
		// One-pole coefficient for the requested cutoff.
		alpha = 1 - math.Exp(-2*math.Pi*v.Filter.CutoffHz/float64(sampleRate))
	}
	for i := 0; i < n; i++ {
		tMs := float64(i) / float64(sampleRate) * 1000
		s := rng.Float64()*2 - 1
		if v.Filter != nil {
			low += alpha * (s - low)
			switch v.Filter.Kind {
			case LowPass:
				s = low
			case HighPass:
				s = s - low
			case BandPass:
				band += alpha * (s - low - band)
				s = band
			}
		}
		out[i] = v.Gain * v.Env.gainAt(tMs) * s
	}
	return out
}

func sampleWave(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if math.Sin(phase) >= 0 {
			return 1
		}
		return -1
	case Sawtooth:
		p := math.Mod(phase/(2*math.Pi), 1)
		return 2*p - 1
	case Triangle:
		p := math.Mod(phase/(2*math.Pi), 1)
		return 1 - 4*math.Abs(p-0.5)
	default:
		return math.Sin(phase)
	}
}
