package physics

import (
	"testing"
	"time"
)

var red = Profile{Name: "Cherry MX Red", ActuationForce: 0.45, Travel: 0.004}

func TestWorkMonotoneInKeystrokes(t *testing.T) {
	prev := -1.0
	for _, n := range []int64{0, 1, 10, 100, 5000, 1_000_000} {
		w := WorkJoules(n, red)
		if w < prev {
			t.Errorf("WorkJoules(%d) = %v, decreased from %v", n, w, prev)
		}
		prev = w
	}
}

func TestWorkZeroForZeroKeys(t *testing.T) {
	if w := WorkJoules(0, red); w != 0 {
		t.Errorf("WorkJoules(0) = %v, want 0", w)
	}
	if w := WorkJoules(-5, red); w != 0 {
		t.Errorf("negative count should clamp to 0, got %v", w)
	}
}

func TestPowerFloorsElapsed(t *testing.T) {
	// 1J over 1ns must not explode: divisor floors at minElapsed.
	p := PowerWatts(1.0, time.Nanosecond)
	want := 1.0 / minElapsed.Seconds()
	if p != want {
		t.Errorf("PowerWatts(1, 1ns) = %v, want %v", p, want)
	}
}

func TestVelocityZeroKeys(t *testing.T) {
	if v := Velocity(0, time.Second, red); v != 0 {
		t.Errorf("Velocity with 0 keys = %v, want 0", v)
	}
}

func TestVelocityKnownValue(t *testing.T) {
	// 10 keys in 1s: 0.1s per key, 4mm travel -> 0.04 m/s.
	v := Velocity(10, time.Second, red)
	if diff := v - 0.04; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Velocity(10, 1s) = %v, want 0.04", v)
	}
}

func TestBurstAccelerationIsRunningMax(t *testing.T) {
	start := time.Unix(1000, 0)
	e := NewEstimator(start, 16)

	now := start
	var burst []float64
	for _, keys := range []int64{20, 5, 40, 0, 0} {
		e.Observe(keys, 0)
		now = now.Add(time.Second)
		s := e.Tick(now, red)
		burst = append(burst, s.BurstAccel)
	}

	for i := 1; i < len(burst); i++ {
		if burst[i] < burst[i-1] {
			t.Errorf("burst acceleration decreased at tick %d: %v -> %v", i, burst[i-1], burst[i])
		}
	}
	if burst[len(burst)-1] <= 0 {
		t.Error("expected positive burst acceleration after activity")
	}
}

func TestPeakVelocityMonotone(t *testing.T) {
	start := time.Unix(0, 0)
	e := NewEstimator(start, 8)
	now := start

	e.Observe(50, 0)
	now = now.Add(time.Second)
	first := e.Tick(now, red)

	// A quieter tick must not lower the peak.
	e.Observe(1, 0)
	now = now.Add(time.Second)
	second := e.Tick(now, red)

	if second.PeakVelocity < first.PeakVelocity {
		t.Errorf("peak velocity decreased: %v -> %v", first.PeakVelocity, second.PeakVelocity)
	}
}

func TestProfileSwitchKeepsCounters(t *testing.T) {
	start := time.Unix(0, 0)
	e := NewEstimator(start, 8)
	e.Observe(100, 20)
	e.Tick(start.Add(time.Second), red)

	keys, clicks := e.TotalKeys(), e.TotalClicks()

	blue := ProfileAt(1)
	s := e.Tick(start.Add(2*time.Second), blue)

	if e.TotalKeys() != keys || e.TotalClicks() != clicks {
		t.Errorf("profile switch changed counters: keys %d->%d clicks %d->%d",
			keys, e.TotalKeys(), clicks, e.TotalClicks())
	}
	if want := WorkJoules(keys, blue); s.WorkJoules != want {
		t.Errorf("work after profile switch = %v, want %v (recomputed on same counters)", s.WorkJoules, want)
	}
}

func TestNegativeDeltasIgnored(t *testing.T) {
	e := NewEstimator(time.Unix(0, 0), 8)
	e.Observe(100, 10)
	e.Observe(-100, -10) // counter reset after a pulse
	if e.TotalKeys() != 100 || e.TotalClicks() != 10 {
		t.Errorf("negative deltas must be ignored: keys=%d clicks=%d", e.TotalKeys(), e.TotalClicks())
	}
}

func TestRingEvictsOldest(t *testing.T) {
	e := NewEstimator(time.Unix(0, 0), 4)
	now := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		e.Observe(int64(i+1), 0)
		now = now.Add(time.Second)
		e.Tick(now, red)
	}
	hist := e.PowerHistory()
	if len(hist) != 4 {
		t.Fatalf("history length = %d, want ring capacity 4", len(hist))
	}
	// Increasing key counts mean increasing power; oldest-first ordering
	// keeps the slice ascending.
	for i := 1; i < len(hist); i++ {
		if hist[i] < hist[i-1] {
			t.Errorf("history out of order at %d: %v", i, hist)
		}
	}
}

func TestResetClearsSession(t *testing.T) {
	e := NewEstimator(time.Unix(0, 0), 4)
	e.Observe(500, 50)
	e.Tick(time.Unix(1, 0), red)

	e.Reset(time.Unix(2, 0))
	if e.TotalKeys() != 0 || e.TotalClicks() != 0 {
		t.Error("Reset should zero the counters")
	}
	if len(e.PowerHistory()) != 0 {
		t.Error("Reset should clear the history ring")
	}
	if s := e.Latest(); s.BurstAccel != 0 || s.PeakVelocity != 0 {
		t.Error("Reset should clear session maxima")
	}
}

func TestNextProfileWraps(t *testing.T) {
	n := len(Profiles())
	i := 0
	for step := 0; step < n; step++ {
		i = NextProfile(i)
	}
	if i != 0 {
		t.Errorf("cycling %d times should wrap to 0, got %d", n, i)
	}
}
