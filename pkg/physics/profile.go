// Package physics derives mechanical quantities (work, power, velocity,
// acceleration, energy) from raw keystroke and click counters. All stored
// values are SI; unit conversion is a render-time concern.
package physics

// Profile models a keyboard switch as an actuation force and a travel
// distance. The catalog below is fixed; profiles are value types and are
// never mutated.
type Profile struct {
	Name           string
	ActuationForce float64 // newtons
	Travel         float64 // meters
}

// The switch catalog. Forces are the manufacturer actuation ratings
// (45g ~= 0.45N etc.), travel is full travel to bottom-out.
var profiles = []Profile{
	{Name: "Cherry MX Red", ActuationForce: 0.45, Travel: 0.004},
	{Name: "Cherry MX Blue", ActuationForce: 0.50, Travel: 0.004},
	{Name: "Cherry MX Brown", ActuationForce: 0.45, Travel: 0.004},
	{Name: "Membrane", ActuationForce: 0.60, Travel: 0.0035},
}

// Profiles returns the fixed switch catalog in display order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// NextProfile returns the index after i, wrapping forward through the
// catalog. Cycling is forward-only.
func NextProfile(i int) int {
	return (i + 1) % len(profiles)
}

// ProfileAt returns the catalog entry at i, clamping out-of-range indices
// to the first entry.
func ProfileAt(i int) Profile {
	if i < 0 || i >= len(profiles) {
		return profiles[0]
	}
	return profiles[i]
}
