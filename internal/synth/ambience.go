package synth

import (
	"fmt"
	"time"
)

// One-shot effects are built from tone sweeps, filtered noise bursts or
// small multi-tone sequences, each with a hand-tuned envelope. Continuous
// ambience is a looping filtered-noise bed plus discrete one-shots on
// randomized intervals.

type effectPart struct {
	offsetMs float64
	voice    Voice
}

var effects = map[string][]effectPart{
	"pop": {
		{0, Tone{Wave: Sine, FreqHz: 420, EndFreqHz: 900, Gain: 0.35,
			Env: pluck(4, 70, 1)}},
	},
	"whoosh": {
		{0, Noise{Gain: 0.3, Seed: 11, Filter: &Filter{Kind: BandPass, CutoffHz: 900},
			Env: Envelope{AttackMs: 120, ReleaseMs: 280, Peak: 1, SustainLevel: 1}}},
	},
	"ding": {
		{0, Tone{Wave: Sine, FreqHz: 1318, Gain: 0.25, Env: pluck(2, 450, 1)}},
		{0, Tone{Wave: Sine, FreqHz: 1976, Gain: 0.12, Env: pluck(2, 350, 1)}},
	},
	"boing": {
		{0, Tone{Wave: Triangle, FreqHz: 300, EndFreqHz: 90, Gain: 0.35,
			Vibrato: &LFO{RateHz: 18, DepthHz: 25}, Env: pluck(6, 420, 1)}},
	},
	"sparkle": {
		{0, Tone{Wave: Sine, FreqHz: 1568, Gain: 0.16, Env: pluck(3, 110, 1)}},
		{90, Tone{Wave: Sine, FreqHz: 2093, Gain: 0.16, Env: pluck(3, 110, 1)}},
		{180, Tone{Wave: Sine, FreqHz: 2637, Gain: 0.16, Env: pluck(3, 160, 1)}},
	},
	"footstep": {
		{0, Noise{Gain: 0.4, Seed: 7, Filter: &Filter{Kind: LowPass, CutoffHz: 220},
			Env: pluck(3, 55, 1)}},
	},
	"sad-trombone": {
		{0, Tone{Wave: Sawtooth, FreqHz: 233, Gain: 0.22, Env: pluck(15, 320, 1)}},
		{350, Tone{Wave: Sawtooth, FreqHz: 220, Gain: 0.22, Env: pluck(15, 320, 1)}},
		{700, Tone{Wave: Sawtooth, FreqHz: 208, Gain: 0.22, Env: pluck(15, 320, 1)}},
		{1050, Tone{Wave: Sawtooth, FreqHz: 196, EndFreqHz: 165, Gain: 0.24,
			Vibrato: &LFO{RateHz: 6, DepthHz: 8}, Env: pluck(15, 500, 1)}},
	},
	"laugh": {
		{0, Tone{Wave: Square, FreqHz: 350, Gain: 0.12, Env: pluck(6, 90, 1)}},
		{130, Tone{Wave: Square, FreqHz: 330, Gain: 0.12, Env: pluck(6, 90, 1)}},
		{260, Tone{Wave: Square, FreqHz: 310, Gain: 0.12, Env: pluck(6, 90, 1)}},
		{390, Tone{Wave: Square, FreqHz: 290, Gain: 0.12, Env: pluck(6, 110, 1)}},
	},
}

// Effects lists the available one-shot effect names.
func Effects() []string {
	out := make([]string, 0, len(effects))
	for name := range effects {
		out = append(out, name)
	}
	return out
}

// PlayEffect schedules a one-shot sound effect at the given offset.
func (e *Engine) PlayEffect(name string, at time.Duration) error {
	parts, ok := effects[name]
	if !ok {
		return fmt.Errorf("unknown sound effect %q", name)
	}
	for _, p := range parts {
		e.backend.Play(p.voice, at+time.Duration(p.offsetMs*float64(time.Millisecond)))
	}
	return nil
}

// bed describes a continuous ambience: a looped filtered-noise segment
// plus an optional randomized one-shot (bird chirps, owl hoots).
type bed struct {
	segment   Voice
	segmentMs float64
	chirp     []effectPart
	chirpMin  time.Duration
	chirpMax  time.Duration
}

var beds = map[string]bed{
	"wind": {
		segment: Noise{Gain: 0.12, Seed: 21, Filter: &Filter{Kind: LowPass, CutoffHz: 400},
			Env: Envelope{AttackMs: 600, SustainMs: 2000, ReleaseMs: 600, Peak: 1, SustainLevel: 0.8}},
		segmentMs: 2600,
	},
	"waves": {
		segment: Noise{Gain: 0.16, Seed: 22, Filter: &Filter{Kind: LowPass, CutoffHz: 600},
			Env: Envelope{AttackMs: 1400, DecayMs: 1800, ReleaseMs: 800, Peak: 1, SustainLevel: 0.25}},
		segmentMs: 3600,
	},
	"rain": {
		segment: Noise{Gain: 0.1, Seed: 23, Filter: &Filter{Kind: BandPass, CutoffHz: 1800},
			Env: Envelope{AttackMs: 300, SustainMs: 2400, ReleaseMs: 300, Peak: 1, SustainLevel: 1}},
		segmentMs: 2700,
	},
	"crickets": {
		segment: Noise{Gain: 0.04, Seed: 24, Filter: &Filter{Kind: HighPass, CutoffHz: 3000},
			Env: Envelope{AttackMs: 400, SustainMs: 2200, ReleaseMs: 400, Peak: 1, SustainLevel: 1}},
		segmentMs: 2600,
		chirp: []effectPart{
			{0, Tone{Wave: Sine, FreqHz: 4200, Gain: 0.05, Env: pluck(4, 40, 1)}},
			{70, Tone{Wave: Sine, FreqHz: 4200, Gain: 0.05, Env: pluck(4, 40, 1)}},
		},
		chirpMin: 900 * time.Millisecond,
		chirpMax: 2800 * time.Millisecond,
	},
	"birds": {
		segment: Noise{Gain: 0.05, Seed: 25, Filter: &Filter{Kind: HighPass, CutoffHz: 1200},
			Env: Envelope{AttackMs: 500, SustainMs: 2000, ReleaseMs: 500, Peak: 1, SustainLevel: 0.7}},
		segmentMs: 2500,
		chirp: []effectPart{
			{0, Tone{Wave: Sine, FreqHz: 2400, EndFreqHz: 3100, Gain: 0.08, Env: pluck(5, 90, 1)}},
			{140, Tone{Wave: Sine, FreqHz: 2800, EndFreqHz: 2300, Gain: 0.08, Env: pluck(5, 110, 1)}},
		},
		chirpMin: 1200 * time.Millisecond,
		chirpMax: 4000 * time.Millisecond,
	},
	"night": {
		segment: Noise{Gain: 0.06, Seed: 26, Filter: &Filter{Kind: LowPass, CutoffHz: 300},
			Env: Envelope{AttackMs: 800, SustainMs: 2400, ReleaseMs: 800, Peak: 1, SustainLevel: 0.9}},
		segmentMs: 3200,
		chirp: []effectPart{
			{0, Tone{Wave: Sine, FreqHz: 392, EndFreqHz: 330, Gain: 0.07, Env: pluck(40, 350, 1)}},
		},
		chirpMin: 2500 * time.Millisecond,
		chirpMax: 7000 * time.Millisecond,
	},
}

// Ambiences lists the available ambience bed names.
func Ambiences() []string {
	out := make([]string, 0, len(beds))
	for name := range beds {
		out = append(out, name)
	}
	return out
}

// ScheduleAmbience loops an ambience bed from at until the stop time.
// The noise bed reschedules itself with a half-segment overlap so the
// crossfade hides the seam; discrete one-shots run on an independent
// randomized interval. Both loops re-check their stop time before
// rescheduling, so nothing is queued past the window.
func (e *Engine) ScheduleAmbience(name string, at, until time.Duration) error {
	b, ok := beds[name]
	if !ok {
		return fmt.Errorf("unknown ambience %q", name)
	}
	if until <= at {
		return nil
	}

	step := time.Duration(b.segmentMs*0.5) * time.Millisecond
	var loop func(now time.Duration)
	loop = func(now time.Duration) {
		if now >= until {
			return
		}
		e.backend.Play(b.segment, now)
		e.sched.At(now+step, loop)
	}
	e.sched.At(at, loop)

	if len(b.chirp) > 0 {
		var chirp func(now time.Duration)
		chirp = func(now time.Duration) {
			if now >= until {
				return
			}
			for _, p := range b.chirp {
				e.backend.Play(p.voice, now+time.Duration(p.offsetMs*float64(time.Millisecond)))
			}
			jitter := b.chirpMin + time.Duration(e.rng.Int63n(int64(b.chirpMax-b.chirpMin)))
			e.sched.At(now+jitter, chirp)
		}
		e.sched.At(at+b.chirpMin, chirp)
	}
	return nil
}
