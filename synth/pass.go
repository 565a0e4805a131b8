package synth

import "github.com/Stateford/aion-sub002/diag"

// OptPass is one optimization pass over a Netlist. Run reports whether it
// changed anything, so RunToFixpoint knows whether another round is
// needed (§4.H).
type OptPass interface {
	Run(n *Netlist, sink *diag.Sink) bool
}

// maxFixpointRounds bounds RunToFixpoint against a pass (or pass
// interaction) that never settles, per §4.H step 2.
const maxFixpointRounds = 16

// RunToFixpoint runs every pass in order, repeating the whole sequence
// until a full pass over all of them makes no further change, or until
// maxFixpointRounds rounds have run. Returns the number of full rounds
// executed (always >= 1).
func RunToFixpoint(passes []OptPass, n *Netlist, sink *diag.Sink) int {
	rounds := 0
	for rounds < maxFixpointRounds {
		rounds++
		changed := false
		for _, p := range passes {
			if p.Run(n, sink) {
				changed = true
			}
		}
		if !changed {
			return rounds
		}
	}
	return rounds
}
