package synth

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Engine ties the generators to one backend and one scheduler. It is
// constructed explicitly and passed by reference; there is no package
// level audio state, so tests swap in a Recorder backend freely.
type Engine struct {
	log     zerolog.Logger
	backend Backend
	sched   *Scheduler
	rng     *rand.Rand

	mu       sync.Mutex
	musicGen uint64
	mood     string
}

// NewEngine creates an engine over the given mix destination. The seed
// feeds ambience jitter only; tone scheduling is fully deterministic.
func NewEngine(b Backend, seed int64, log zerolog.Logger) *Engine {
	return &Engine{
		log:     log.With().Str("component", "synth").Logger(),
		backend: b,
		sched:   NewScheduler(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Backend exposes the mix destination (for rendering / assertions).
func (e *Engine) Backend() Backend { return e.backend }

// Scheduler exposes the engine's timer queue so the export pipeline can
// drive it from the frame clock.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Run advances the scheduler and the backend clock to the horizon.
func (e *Engine) Run(horizon time.Duration) {
	e.sched.RunUntil(horizon)
	e.backend.Advance(horizon)
}

// Stop cancels every pending scheduled callback and stops every
// still-running node. It is idempotent and a no-op when nothing plays.
// After Stop the engine schedules nothing further.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.musicGen++
	e.mood = ""
	e.mu.Unlock()

	e.sched.Cancel()
	e.backend.StopAll()
	e.log.Debug().Msg("synthesis stopped, arena swept")
}
