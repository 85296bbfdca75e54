package physics

import (
	"math"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnergyKnownFigures(t *testing.T) {
	// 1,000,000 keystrokes on MX Red: 0.45N * 0.004m * 1e6 = 1800 J.
	r := Energy(1_000_000, red)
	if !almost(r.WorkJoules, 1800) {
		t.Errorf("work = %v, want 1800", r.WorkJoules)
	}
	if !almost(r.Calories, 1800/4.184) {
		t.Errorf("calories = %v", r.Calories)
	}
	if !almost(r.Kilocalories, r.Calories/1000) {
		t.Errorf("kcal = %v, want calories/1000", r.Kilocalories)
	}
}

func TestEnergyComparisonsScaleWithWork(t *testing.T) {
	small := Energy(1000, red)
	big := Energy(2000, red)
	if !almost(big.CandyEquiv, 2*small.CandyEquiv) {
		t.Errorf("candy equivalent should double with work: %v vs %v", small.CandyEquiv, big.CandyEquiv)
	}
	if !almost(big.RunningMinutes, 2*small.RunningMinutes) {
		t.Errorf("running minutes should double with work: %v vs %v", small.RunningMinutes, big.RunningMinutes)
	}
}

func TestEnergyZero(t *testing.T) {
	r := Energy(0, red)
	if r.WorkJoules != 0 || r.Calories != 0 || r.CandyEquiv != 0 {
		t.Errorf("zero keystrokes should yield a zero report: %+v", r)
	}
}
