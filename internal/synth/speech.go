package synth

import (
	"strings"
	"time"
	"unicode"
)

// Speech-rhythm synthesis: each narration word becomes one tone with a
// fast attack/decay envelope followed by a fixed inter-word gap. The tone
// pitch is a deterministic function of word length, so the same narration
// always sounds the same.
const (
	maxWordToneMs = 450
	wordGapMs     = 90
	minToneMs     = 60
	toneAttackMs  = 12
)

// ScheduleSpeech schedules one tone per word of text across a narration
// window starting at the given offset, and returns the number of tones.
// Each word's slice of the window is capped at maxWordToneMs; the cap is
// not redistributed, so short narrations in long scenes end early rather
// than stretching words unnaturally.
func (e *Engine) ScheduleSpeech(text string, window time.Duration, at time.Duration) int {
	words := speechWords(text)
	if len(words) == 0 {
		return 0
	}

	slice := float64(window.Milliseconds()) / float64(len(words))
	if slice > maxWordToneMs {
		slice = maxWordToneMs
	}
	attackMs := float64(toneAttackMs)
	if attackMs > slice*0.2 {
		attackMs = slice * 0.2
	}
	toneMs := slice - wordGapMs
	if toneMs < minToneMs {
		toneMs = minToneMs
	}
	// Dense narrations shed the inter-word gap before they shed tone
	// length; attack plus tone never outlasts the word's slice.
	if max := slice - attackMs; toneMs > max {
		toneMs = max
	}
	if toneMs < 0 {
		toneMs = 0
	}

	for i, w := range words {
		start := at + time.Duration(float64(i)*slice*float64(time.Millisecond))
		e.backend.Play(Tone{
			Wave:   Sine,
			FreqHz: wordFreq(w),
			Gain:   0.22,
			Env: Envelope{
				AttackMs:     attackMs,
				DecayMs:      toneMs * 0.35,
				SustainMs:    toneMs * 0.4,
				ReleaseMs:    toneMs * 0.25,
				Peak:         1.0,
				SustainLevel: 0.55,
			},
		}, start)
	}
	return len(words)
}

// wordFreq derives a tone pitch from word length: longer words speak
// lower, clamped to a narrow band that reads as murmured narration.
func wordFreq(word string) float64 {
	l := len(word)
	if l > 9 {
		l = 9
	}
	return 300 - 16*float64(l)
}

func speechWords(text string) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			out = append(out, tok)
		}
	}
	return out
}
