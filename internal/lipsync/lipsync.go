// Package lipsync derives timed mouth-shape events from narration text
// without a speech engine. The heuristic scans the text left to right,
// matching two-letter digraphs before single letters, maps each unit
// through a fixed phoneme table, and spreads the units evenly across the
// narration window. It is deterministic and has no failure mode: empty or
// non-letter text degrades to a single closed-mouth frame.
package lipsync

import (
	"strings"
	"unicode"
)

// MouthShape is a symbolic mouth position consumed by the rasterizer and
// by the mouthShape clip property.
type MouthShape string

const (
	ShapeClosed MouthShape = "closed"
	ShapeHalf   MouthShape = "half"
	ShapeOpen   MouthShape = "open"
	ShapeWide   MouthShape = "wide"
	ShapeRound  MouthShape = "round"
)

// Frame is a timestamped mouth-shape assignment.
type Frame struct {
	TimeMs float64
	Shape  MouthShape
}

// Data is an immutable lip-sync timeline for one narration string.
type Data struct {
	Frames          []Frame
	TotalDurationMs float64
}

// phonemeShapes maps recognized units to mouth shapes. Vowels map to the
// open/wide/round set, lip consonants close the mouth, every other
// consonant shows the neutral half shape.
var phonemeShapes = map[string]MouthShape{
	"a": ShapeOpen, "e": ShapeWide, "i": ShapeWide,
	"o": ShapeRound, "u": ShapeRound,
	"b": ShapeClosed, "m": ShapeClosed, "p": ShapeClosed,
	"th": ShapeHalf, "sh": ShapeHalf, "ch": ShapeHalf,
	"w": ShapeRound, "q": ShapeRound,
}

var digraphs = []string{"th", "sh", "ch"}

// pause is an internal marker for sentence-ending punctuation. A pause
// shows a closed mouth and consumes half a unit's duration.
const pauseUnit = "."

// Generate builds the lip-sync timeline for text spoken over at most
// durationMs at the given words-per-minute pace. The resulting total
// duration never exceeds durationMs.
func Generate(text string, durationMs float64, wordsPerMinute int) Data {
	units := segment(text)
	words := WordCount(text)
	if len(units) == 0 || words == 0 {
		return Data{Frames: []Frame{{TimeMs: 0, Shape: ShapeClosed}}}
	}

	actual := durationMs
	if wordsPerMinute > 0 {
		spoken := float64(words) / float64(wordsPerMinute) * 60000
		if spoken < actual {
			actual = spoken
		}
	}
	if actual < 0 {
		actual = 0
	}

	// Pauses weigh half a unit.
	totalWeight := 0.0
	for _, u := range units {
		if u == pauseUnit {
			totalWeight += 0.5
		} else {
			totalWeight += 1
		}
	}

	// Frame times are fractions of the actual duration rather than an
	// accumulated sum, so the last frame lands exactly on the duration.
	frames := make([]Frame, 0, len(units)+1)
	weightDone := 0.0
	prev := MouthShape("")
	for _, u := range units {
		shape := ShapeHalf
		weight := 1.0
		if u == pauseUnit {
			shape = ShapeClosed
			weight = 0.5
		} else if s, ok := phonemeShapes[u]; ok {
			shape = s
		}
		if shape != prev {
			frames = append(frames, Frame{TimeMs: actual * (weightDone / totalWeight), Shape: shape})
			prev = shape
		}
		weightDone += weight
	}
	if prev != ShapeClosed {
		frames = append(frames, Frame{TimeMs: actual, Shape: ShapeClosed})
	}

	return Data{Frames: frames, TotalDurationMs: actual}
}

// ShapeAt returns the shape of the last frame whose time is at or before
// tMs. Times before the first frame, or past the final frame, read closed.
func (d Data) ShapeAt(tMs float64) MouthShape {
	shape := ShapeClosed
	for _, f := range d.Frames {
		if f.TimeMs > tMs {
			break
		}
		shape = f.Shape
	}
	if tMs > d.TotalDurationMs {
		return ShapeClosed
	}
	return shape
}

// WordCount counts whitespace-separated tokens containing at least one
// letter.
func WordCount(text string) int {
	n := 0
	for _, tok := range strings.Fields(text) {
		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			n++
		}
	}
	return n
}

// segment splits text into recognized units: digraphs, single letters and
// sentence-ending pauses. Everything else is dropped.
func segment(text string) []string {
	lower := strings.ToLower(text)
	var units []string
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c == '.' || c == '!' || c == '?' {
			units = append(units, pauseUnit)
			continue
		}
		if c < 'a' || c > 'z' {
			continue
		}
		matched := false
		if i+1 < len(lower) {
			pair := lower[i : i+2]
			for _, d := range digraphs {
				if pair == d {
					units = append(units, d)
					i++
					matched = true
					break
				}
			}
		}
		if !matched {
			units = append(units, string(c))
		}
	}
	return units
}
