package store

// Config sizes the three fixed-capacity tables. The defaults mirror the
// original interpreter's compiled-in limits (1000 atoms, 1000 numbers, 6000
// cons cells) but every field is overridable so a host program, or a test,
// can run against a tiny arena and exercise capacity and out-of-space
// behaviour deliberately.
type Config struct {
	AtomCapacity   int `env:"GOVOL_ATOM_CAPACITY" envDefault:"1000"`
	NumberCapacity int `env:"GOVOL_NUMBER_CAPACITY" envDefault:"1000"`
	ListCapacity   int `env:"GOVOL_LIST_CAPACITY" envDefault:"6000"`
}

// DefaultConfig returns the original interpreter's table sizes.
func DefaultConfig() Config {
	return Config{AtomCapacity: 1000, NumberCapacity: 1000, ListCapacity: 6000}
}
