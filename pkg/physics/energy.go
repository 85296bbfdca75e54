package physics

// Thermochemical calorie.
const joulesPerCalorie = 4.184

// Comparison rates for the calorimetry report.
const (
	kcalPerCandy      = 10.0 // one standard chocolate candy
	kcalPerMinRunning = 10.0 // average recreational runner
)

// EnergyReport is the deterministic expansion of a work figure into
// human-relatable units. Everything here is a pure function of WorkJoules.
type EnergyReport struct {
	Keystrokes     int64
	WorkJoules     float64
	Calories       float64
	Kilocalories   float64
	CandyEquiv     float64
	RunningMinutes float64
}

// Energy derives the full calorimetry report for count keystrokes on
// profile p.
func Energy(count int64, p Profile) EnergyReport {
	work := WorkJoules(count, p)
	cal := work / joulesPerCalorie
	kcal := cal / 1000
	return EnergyReport{
		Keystrokes:     count,
		WorkJoules:     work,
		Calories:       cal,
		Kilocalories:   kcal,
		CandyEquiv:     kcal / kcalPerCandy,
		RunningMinutes: kcal / kcalPerMinRunning,
	}
}
