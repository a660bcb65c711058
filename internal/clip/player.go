package clip

// Player is the per-character animation cursor. It has exactly two modes:
// playing-looping and playing-once. A once-clip freezes at its final
// sampled value when the elapsed time reaches the clip duration and emits
// no further change until a new clip is assigned.
type Player struct {
	RigID     string
	ElapsedMs float64
	Speed     float64

	clip *Clip
	last map[string]Transform
}

// NewPlayer creates a cursor for a rig playing the given clip from t=0
// at normal speed.
func NewPlayer(rigID string, c *Clip) *Player {
	p := &Player{RigID: rigID, Speed: 1}
	p.SetClip(c)
	return p
}

// SetClip replaces the current clip and rewinds the cursor. A nil clip
// leaves the player emitting identity transforms.
func (p *Player) SetClip(c *Clip) {
	p.clip = c
	p.ElapsedMs = 0
	p.last = nil
	if c != nil {
		p.last = c.Sample(0)
	}
}

// Clip returns the currently assigned clip.
func (p *Player) Clip() *Clip { return p.clip }

// Done reports whether a once-clip has reached its end. Looping clips are
// never done.
func (p *Player) Done() bool {
	return p.clip != nil && !p.clip.Loop && p.ElapsedMs >= p.clip.DurationMs
}

// Advance moves the cursor by deltaMs scaled by Speed and returns the
// transforms at the new time. Advancing a finished once-clip returns the
// frozen final sample.
func (p *Player) Advance(deltaMs float64) map[string]Transform {
	if p.clip == nil {
		return nil
	}
	if p.Done() {
		return p.last
	}
	p.ElapsedMs += deltaMs * p.Speed
	if !p.clip.Loop && p.ElapsedMs > p.clip.DurationMs {
		p.ElapsedMs = p.clip.DurationMs
	}
	p.last = p.clip.Sample(p.ElapsedMs)
	return p.last
}

// Sample returns the transforms at the current cursor without advancing.
// Sampling the same (clip, time) pair twice yields identical transforms.
func (p *Player) Sample() map[string]Transform {
	if p.clip == nil {
		return nil
	}
	return p.clip.Sample(p.ElapsedMs)
}
