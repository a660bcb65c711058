package synth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopSweepsArenaAndClearsTimers(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)

	require.NoError(t, e.ScheduleAmbience("birds", 0, 20*time.Second))
	e.ScheduleMoodBed("calm", 0, 20*time.Second)
	e.Run(2 * time.Second)
	require.Greater(t, rec.Live(), 0)
	require.Greater(t, e.Scheduler().Pending(), 0)

	e.Stop()
	assert.Equal(t, 0, rec.Live())
	assert.Equal(t, 0, e.Scheduler().Pending())
	assert.True(t, e.Scheduler().Canceled())

	// Idempotent.
	e.Stop()
	assert.Equal(t, 0, rec.Live())
}

func TestStopWithNothingPlaying(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)
	e.Stop()
	assert.Equal(t, 0, rec.Live())
	assert.Equal(t, 0, rec.Stopped)
}

func TestPlayMood(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)

	require.NoError(t, e.PlayMood("happy"))
	e.Run(time.Second)
	first := len(rec.Played)
	assert.Greater(t, first, 0)

	// Same mood again is a no-op: no extra notes beyond the loop's own.
	require.NoError(t, e.PlayMood("happy"))
	assert.Equal(t, first, len(rec.Played))

	assert.Error(t, e.PlayMood("polka"))
}

func TestStopMusicHaltsRescheduling(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)

	require.NoError(t, e.PlayMood("exciting"))
	e.Run(time.Second)
	e.StopMusic()
	played := len(rec.Played)

	// The stale loop iteration drops out on the generation check.
	e.Run(10 * time.Second)
	assert.Equal(t, played, len(rec.Played))

	// Idempotent with nothing playing.
	e.StopMusic()
}

func TestMoodTableComplete(t *testing.T) {
	ids := Moods()
	assert.Len(t, ids, 10)
	for _, id := range ids {
		m := moods[id]
		assert.Equal(t, id, m.ID)
		assert.Greater(t, m.TempoBPM, 0)
		assert.NotEmpty(t, m.Pattern)
		if len(m.Harmony) > 0 {
			assert.Len(t, m.Harmony, len(m.Pattern), "mood %s", id)
		}
	}
}

func TestPlayEffect(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)

	require.NoError(t, e.PlayEffect("sparkle", time.Second))
	assert.Len(t, rec.Played, 3)
	// Parts keep their relative offsets.
	assert.Equal(t, time.Second, rec.Played[0].At)
	assert.Greater(t, rec.Played[2].At, rec.Played[0].At)

	assert.Error(t, e.PlayEffect("kaboom", 0))
}

func TestScheduleAmbienceStopsAtWindowEnd(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)

	until := 5 * time.Second
	require.NoError(t, e.ScheduleAmbience("waves", 0, until))
	e.Run(30 * time.Second)

	for _, pv := range rec.Played {
		assert.Less(t, pv.At, until)
	}
	assert.Equal(t, 0, e.Scheduler().Pending())
	assert.Error(t, e.ScheduleAmbience("thunder", 0, until))
}

func TestMoodBedRespectsWindow(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(rec)

	until := 3 * time.Second
	e.ScheduleMoodBed("adventure", time.Second, until)
	e.Run(20 * time.Second)

	require.NotEmpty(t, rec.Played)
	for _, pv := range rec.Played {
		assert.Less(t, pv.At, until)
	}

	// Unknown moods schedule nothing.
	before := len(rec.Played)
	e.ScheduleMoodBed("unknown", 0, until)
	e.Run(25 * time.Second)
	assert.Equal(t, before, len(rec.Played))
}

func TestPCMMixAndWAVEncode(t *testing.T) {
	pcm := NewPCM(44100)
	e := NewEngine(pcm, 1, zerolog.Nop())

	e.ScheduleSpeech("Hello world", 2*time.Second, 0)
	e.Run(3 * time.Second)

	assert.Greater(t, pcm.Duration(), time.Duration(0))
	assert.Equal(t, 0, pcm.Live())

	path := filepath.Join(t.TempDir(), "mix.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, pcm.EncodeWAV(f))
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	// 16-bit mono: at least two bytes per rendered sample plus header.
	minSize := int64(pcm.Duration().Seconds()*44100)*2 + 44
	assert.GreaterOrEqual(t, info.Size(), minSize)
}

func TestPCMStopAllTruncatesAtClock(t *testing.T) {
	pcm := NewPCM(44100)
	e := NewEngine(pcm, 1, zerolog.Nop())

	e.ScheduleSpeech("one two three four five", 5*time.Second, 0)
	e.Run(time.Second)
	e.Stop()

	assert.Equal(t, 0, pcm.Live())
	assert.LessOrEqual(t, pcm.Duration(), time.Second)
}
