package synth

import (
	"fmt"
	"math"
	"time"
)

// Mood is a named musical style: a tempo, a major/minor scale rooted at a
// MIDI note and a hand-authored degree pattern. Degree -1 is a rest;
// degrees past 6 wrap an octave up. Harmony degrees layer a second voice
// at the same onset.
type Mood struct {
	ID       string
	TempoBPM int
	RootMIDI int
	Minor    bool
	Wave     Waveform
	Pattern  []int
	Harmony  []int // same length as Pattern when present, -1 = no layer
}

var majorScale = []int{0, 2, 4, 5, 7, 9, 11}
var minorScale = []int{0, 2, 3, 5, 7, 8, 10}

// moods is the fixed style table. Tempos and patterns are hand-tuned; the
// ids are part of the public contract.
var moods = map[string]Mood{
	"happy": {
		ID: "happy", TempoBPM: 132, RootMIDI: 60, Wave: Triangle,
		Pattern: []int{0, 2, 4, 2, 5, 4, 2, 0},
		Harmony: []int{2, -1, 6, -1, 7, -1, 4, -1},
	},
	"sad": {
		ID: "sad", TempoBPM: 66, RootMIDI: 57, Minor: true, Wave: Sine,
		Pattern: []int{0, 2, 1, -1, 0, -1, -2, -1},
	},
	"adventure": {
		ID: "adventure", TempoBPM: 120, RootMIDI: 55, Wave: Sawtooth,
		Pattern: []int{0, 0, 4, 4, 5, 4, 2, 0},
		Harmony: []int{-1, 2, -1, 6, -1, 6, -1, 2},
	},
	"mystery": {
		ID: "mystery", TempoBPM: 88, RootMIDI: 58, Minor: true, Wave: Sine,
		Pattern: []int{0, -1, 3, -1, 1, -1, 4, -1},
	},
	"calm": {
		ID: "calm", TempoBPM: 60, RootMIDI: 62, Wave: Sine,
		Pattern: []int{0, -1, 2, -1, 4, -1, 2, -1},
	},
	"exciting": {
		ID: "exciting", TempoBPM: 150, RootMIDI: 64, Wave: Square,
		Pattern: []int{0, 2, 4, 5, 7, 5, 4, 2},
		Harmony: []int{4, -1, 7, -1, 9, -1, 7, -1},
	},
	"romantic": {
		ID: "romantic", TempoBPM: 76, RootMIDI: 61, Wave: Triangle,
		Pattern: []int{0, 4, 2, 4, 5, 4, 2, -1},
	},
	"scary": {
		ID: "scary", TempoBPM: 72, RootMIDI: 52, Minor: true, Wave: Sawtooth,
		Pattern: []int{0, -1, 1, -1, 0, -1, 1, 0},
	},
	"funny": {
		ID: "funny", TempoBPM: 140, RootMIDI: 65, Wave: Square,
		Pattern: []int{0, 4, 0, 4, 7, 5, 4, 2},
	},
	"epic": {
		ID: "epic", TempoBPM: 100, RootMIDI: 48, Minor: true, Wave: Sawtooth,
		Pattern: []int{0, 0, 4, 4, 6, 6, 4, -1},
		Harmony: []int{7, -1, 9, -1, 11, -1, 9, -1},
	},
}

// Moods lists the available mood ids.
func Moods() []string {
	out := make([]string, 0, len(moods))
	for id := range moods {
		out = append(out, id)
	}
	return out
}

// PlayMood starts the looping background music for a mood. Starting the
// mood already playing is a no-op; starting a different mood replaces it
// at the next pattern boundary (the old loop stops rescheduling).
func (e *Engine) PlayMood(id string) error {
	m, ok := moods[id]
	if !ok {
		return fmt.Errorf("unknown mood %q", id)
	}

	e.mu.Lock()
	if e.mood == id {
		e.mu.Unlock()
		return nil
	}
	e.musicGen++
	gen := e.musicGen
	e.mood = id
	e.mu.Unlock()

	e.log.Debug().Str("mood", id).Int("bpm", m.TempoBPM).Msg("mood music started")
	e.scheduleMoodLoop(m, gen, e.sched.Now(), 0.16, 0)
	return nil
}

// StopMusic stops the music loop; pending beats already in the queue see
// the bumped generation and drop out instead of rescheduling. Idempotent,
// no-op when nothing is playing.
func (e *Engine) StopMusic() {
	e.mu.Lock()
	if e.mood == "" {
		e.mu.Unlock()
		return
	}
	e.musicGen++
	e.mood = ""
	e.mu.Unlock()
	e.log.Debug().Msg("mood music stopped")
}

// ScheduleMoodBed lays a quiet version of a scene's mood under its
// narration: the pattern at reduced gain plus a root-note drone, looping
// until the scene window ends. Unknown moods schedule nothing.
func (e *Engine) ScheduleMoodBed(id string, at, until time.Duration) {
	m, ok := moods[id]
	if !ok {
		return
	}
	dur := until - at
	if dur <= 0 {
		return
	}
	e.backend.Play(Tone{
		Wave:   Sine,
		FreqHz: midiFreq(m.RootMIDI - 12),
		Gain:   0.05,
		Env: Envelope{
			AttackMs:     400,
			SustainMs:    math.Max(0, float64(dur.Milliseconds())-1200),
			ReleaseMs:    800,
			Peak:         1,
			SustainLevel: 1,
		},
	}, at)

	e.mu.Lock()
	gen := e.musicGen
	e.mu.Unlock()
	e.scheduleMoodLoop(m, gen, at, 0.07, until)
}

// scheduleMoodLoop queues one pattern's worth of notes and reschedules
// itself after patternLength x beatDuration. Each iteration re-checks the
// music generation (and the optional stop time) before rescheduling.
func (e *Engine) scheduleMoodLoop(m Mood, gen uint64, at time.Duration, gain float64, until time.Duration) {
	beat := time.Duration(60000/float64(m.TempoBPM)) * time.Millisecond
	patternDur := beat * time.Duration(len(m.Pattern))

	var iterate func(now time.Duration)
	iterate = func(now time.Duration) {
		e.mu.Lock()
		live := e.musicGen == gen
		e.mu.Unlock()
		if !live || (until > 0 && now >= until) {
			return
		}
		for i, deg := range m.Pattern {
			onset := now + beat*time.Duration(i)
			if until > 0 && onset >= until {
				break
			}
			// -1 is a rest; -2 and below reach under the root.
			if deg != -1 {
				e.playNote(m, deg, onset, beat, gain)
			}
			if i < len(m.Harmony) && m.Harmony[i] != -1 {
				e.playNote(m, m.Harmony[i], onset, beat, gain*0.6)
			}
		}
		e.sched.At(now+patternDur, iterate)
	}
	e.sched.At(at, iterate)
}

func (e *Engine) playNote(m Mood, degree int, at time.Duration, beat time.Duration, gain float64) {
	noteMs := float64(beat.Milliseconds()) * 0.9
	e.backend.Play(Tone{
		Wave:   m.Wave,
		FreqHz: degreeFreq(m, degree),
		Gain:   gain,
		Env: Envelope{
			AttackMs:     10,
			DecayMs:      noteMs * 0.3,
			SustainMs:    noteMs * 0.4,
			ReleaseMs:    noteMs * 0.3,
			Peak:         1,
			SustainLevel: 0.5,
		},
	}, at)
}

// degreeFreq resolves a scale degree against the mood's scale. Negative
// degrees (other than the rest marker) reach below the root; degrees past
// the scale wrap octaves.
func degreeFreq(m Mood, degree int) float64 {
	scale := majorScale
	if m.Minor {
		scale = minorScale
	}
	octave := 0
	for degree < 0 {
		degree += len(scale)
		octave--
	}
	octave += degree / len(scale)
	step := scale[degree%len(scale)]
	return midiFreq(m.RootMIDI + octave*12 + step)
}

func midiFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}
