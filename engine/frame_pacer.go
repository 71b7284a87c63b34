package engine

import "time"

// framePacer schedules frames on a fixed grid. Each frame is due one interval after the
// previous deadline, not after the previous frame finished, so short stalls are caught up.
type framePacer struct {
	interval time.Duration
	next     time.Time
}

// newFramePacer returns a pacer whose first frame is due one interval after start.
// An fps of 0 or less disables pacing.
func newFramePacer(fps float64, start time.Time) *framePacer {
	p := &framePacer{}
	if fps > 0 {
		p.interval = time.Duration(float64(time.Second) / fps)
	}
	p.next = start.Add(p.interval)
	return p
}

// wait returns how long to sleep at now before the next frame and advances the deadline.
// A pacer that has fallen more than one interval behind restarts its grid at now rather than
// rendering a burst of frames.
func (p *framePacer) wait(now time.Time) time.Duration {
	if p.interval <= 0 {
		return 0
	}
	remaining := p.next.Sub(now)
	if remaining < -p.interval {
		p.next = now.Add(p.interval)
		return 0
	}
	p.next = p.next.Add(p.interval)
	return max(remaining, 0)
}

// frameTime returns the fixed simulation step per frame, 0 when unpaced.
func (p *framePacer) frameTime() time.Duration {
	return p.interval
}
