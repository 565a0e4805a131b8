package timing

// Clock describes one clock domain's period and optional waveform, in
// femtoseconds (matching simulate's time base).
type Clock struct {
	Name     string
	Port     string
	Period   int64
	HasWave  bool
	HighTime int64 // only meaningful when HasWave
	RiseTime int64 // only meaningful when HasWave
}

// IODelay constrains an external input or output delay relative to a
// named clock.
type IODelay struct {
	Port    string
	Clock   string
	Delay   int64
	IsInput bool
}

// FalsePath names an endpoint pair excluded from analysis entirely (§4.J).
// Analyze matches on To alone: every node named To loses its required
// time, whichever startpoint From names.
type FalsePath struct {
	From string
	To   string
}

// MulticyclePath multiplies its endpoint's required time by Cycles.
type MulticyclePath struct {
	From   string
	To     string
	Cycles int
}

// MaxDelayPath sets an absolute required time at an endpoint, overriding
// whatever a clock constraint would otherwise imply.
type MaxDelayPath struct {
	From  string
	To    string
	Delay int64
}

// Constraints bundles every constraint kind analyze_timing consumes
// (§4.J). Clocks is a slice (not a single clock) so that multi-clock
// designs parse structurally even though cross-domain path analysis is
// out of the committed single-clock contract (§9 open question).
type Constraints struct {
	Clocks          []Clock
	IODelays        []IODelay
	FalsePaths      []FalsePath
	MulticyclePaths []MulticyclePath
	MaxDelayPaths   []MaxDelayPath
}

// ClockFor returns the clock constraint with the given name, if any.
func (c *Constraints) ClockFor(name string) (Clock, bool) {
	for _, clk := range c.Clocks {
		if clk.Name == name {
			return clk, true
		}
	}
	return Clock{}, false
}

// isFalsePath reports whether (from, to) is named in FalsePaths, by node
// name.
func (c *Constraints) isFalsePath(from, to string) bool {
	for _, fp := range c.FalsePaths {
		if fp.From == from && fp.To == to {
			return true
		}
	}
	return false
}

func (c *Constraints) multicycleFor(from, to string) (int, bool) {
	for _, mp := range c.MulticyclePaths {
		if mp.From == from && mp.To == to {
			return mp.Cycles, true
		}
	}
	return 0, false
}

func (c *Constraints) maxDelayFor(from, to string) (int64, bool) {
	for _, mp := range c.MaxDelayPaths {
		if mp.From == from && mp.To == to {
			return mp.Delay, true
		}
	}
	return 0, false
}
