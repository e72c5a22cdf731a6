package physics

// Physical constants in SI units.
const (
	// G is the gravitational constant [m^3 kg^-1 s^-2].
	G = 6.67384e-11
	// MSun is the solar mass [kg].
	MSun = 1.9891e30
	// Gravity is the standard gravitational acceleration on Earth [m s^-2].
	Gravity = 9.80665
)
