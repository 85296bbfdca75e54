package physics

import (
	"math"
	"time"
)

// minElapsed floors the elapsed-time divisor so the first tick after a
// session reset cannot blow up power or velocity.
const minElapsed = 100 * time.Millisecond

// DefaultHistory is the ring capacity used for the power sparkline.
const DefaultHistory = 120

// MaxGaugePower is the full-scale wattage for the power gauge: roughly
// the sustained output of very fast typing on a heavy switch.
const MaxGaugePower = 0.065

// HealthLimitJoulesPerHour is the full-scale work rate for the strain
// gauge.
const HealthLimitJoulesPerHour = 50.0

// Sample is one derived kinetic estimate, produced every tick. Velocity
// and acceleration are SI (m/s, m/s^2); display conversion to centimeters
// multiplies by 100 at render time and never touches the sample.
type Sample struct {
	At            time.Time
	KeysPerSecond float64
	ClicksPerSec  float64
	PeakVelocity  float64
	BurstAccel    float64
	PowerWatts    float64
	WorkJoules    float64
}

// WorkJoules is the mechanical work to press count switches described by p.
func WorkJoules(count int64, p Profile) float64 {
	if count < 0 {
		count = 0
	}
	return p.ActuationForce * p.Travel * float64(count)
}

// PowerWatts divides work over elapsed time, flooring elapsed to avoid a
// divide-by-near-zero on the first tick.
func PowerWatts(workJoules float64, elapsed time.Duration) float64 {
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	return workJoules / elapsed.Seconds()
}

// Velocity is the mean finger speed implied by count keystrokes over
// elapsed time: travel distance divided by time per keystroke. Zero
// keystrokes report zero, not NaN.
func Velocity(count int64, elapsed time.Duration, p Profile) float64 {
	if count <= 0 {
		return 0
	}
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	perKey := elapsed.Seconds() / float64(count)
	return p.Travel / perKey
}

// Estimator accumulates raw counter deltas from the realtime stream and
// turns them into Samples on each tick. It is owned by the event loop and
// must only be touched from there.
type Estimator struct {
	sessionStart time.Time
	lastTick     time.Time
	lastVelocity float64

	totalKeys   int64
	totalClicks int64
	windowKeys  int64 // keys observed since the last tick
	windowClick int64

	peakVelocity float64
	burstAccel   float64

	ring []Sample
	head int
	n    int
}

// NewEstimator returns an estimator with the given ring capacity
// (DefaultHistory if cap <= 0), with the session clock starting at now.
func NewEstimator(now time.Time, capacity int) *Estimator {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Estimator{
		sessionStart: now,
		lastTick:     now,
		ring:         make([]Sample, capacity),
	}
}

// Observe records counter deltas from the event stream. Negative deltas
// (client counter reset after a pulse) are ignored rather than unwinding
// the session totals.
func (e *Estimator) Observe(keyDelta, clickDelta int64) {
	if keyDelta > 0 {
		e.totalKeys += keyDelta
		e.windowKeys += keyDelta
	}
	if clickDelta > 0 {
		e.totalClicks += clickDelta
		e.windowClick += clickDelta
	}
}

// SessionStart returns when this session's counters began accumulating.
func (e *Estimator) SessionStart() time.Time { return e.sessionStart }

// TotalKeys returns the session keystroke counter.
func (e *Estimator) TotalKeys() int64 { return e.totalKeys }

// TotalClicks returns the session click counter.
func (e *Estimator) TotalClicks() int64 { return e.totalClicks }

// Tick derives the next Sample from everything observed since the last
// tick, pushes it onto the ring, and returns it. Burst acceleration and
// peak velocity are running session maxima; they only move up.
func (e *Estimator) Tick(now time.Time, p Profile) Sample {
	interval := now.Sub(e.lastTick)
	if interval < minElapsed {
		interval = minElapsed
	}

	kps := float64(e.windowKeys) / interval.Seconds()
	cps := float64(e.windowClick) / interval.Seconds()

	vel := Velocity(e.windowKeys, interval, p)
	if vel > e.peakVelocity {
		e.peakVelocity = vel
	}

	accel := math.Abs(vel-e.lastVelocity) / interval.Seconds()
	if accel > e.burstAccel {
		e.burstAccel = accel
	}

	work := WorkJoules(e.totalKeys, p)
	power := PowerWatts(WorkJoules(e.windowKeys, p), interval)

	s := Sample{
		At:            now,
		KeysPerSecond: kps,
		ClicksPerSec:  cps,
		PeakVelocity:  e.peakVelocity,
		BurstAccel:    e.burstAccel,
		PowerWatts:    power,
		WorkJoules:    work,
	}
	e.push(s)

	e.lastTick = now
	e.lastVelocity = vel
	e.windowKeys = 0
	e.windowClick = 0
	return s
}

// Latest returns the most recent sample, or a zero Sample before the
// first tick.
func (e *Estimator) Latest() Sample {
	if e.n == 0 {
		return Sample{}
	}
	idx := (e.head - 1 + len(e.ring)) % len(e.ring)
	return e.ring[idx]
}

// PowerHistory returns the ring's power values, oldest first, for the
// scrolling sparkline.
func (e *Estimator) PowerHistory() []float64 {
	out := make([]float64, 0, e.n)
	start := (e.head - e.n + len(e.ring)) % len(e.ring)
	for i := 0; i < e.n; i++ {
		out = append(out, e.ring[(start+i)%len(e.ring)].PowerWatts)
	}
	return out
}

// Reset starts a fresh session: counters, maxima, and history all clear.
func (e *Estimator) Reset(now time.Time) {
	*e = *NewEstimator(now, len(e.ring))
}

func (e *Estimator) push(s Sample) {
	e.ring[e.head] = s
	e.head = (e.head + 1) % len(e.ring)
	if e.n < len(e.ring) {
		e.n++
	}
}
