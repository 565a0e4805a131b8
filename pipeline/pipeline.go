// Package pipeline wires the compiler's independent stages — elaboration,
// synthesis, place-and-route, timing analysis, and bitstream generation —
// into one fluent-builder entry point, the way the teacher's api and core
// packages build a Driver/Core from shared engine/frequency inputs (§2).
// It owns none of the stage logic itself: every step here is a direct
// call into the package that implements it.
package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/bitstream"
	"github.com/Stateford/aion-sub002/cache"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/elaborate"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
	"github.com/Stateford/aion-sub002/pnr"
	"github.com/Stateford/aion-sub002/simulate"
	"github.com/Stateford/aion-sub002/source"
	"github.com/Stateford/aion-sub002/synth"
	"github.com/Stateford/aion-sub002/timing"

	"github.com/sarchlab/akita/v4/sim"
)

// Builder wires a full compile: elaborate → synthesize → place-and-route,
// with timing analysis and bitstream generation as optional trailing
// steps. Fields are set via With... methods that return a modified copy,
// mirroring core.Builder and api.DriverBuilder's fluent value-receiver
// pattern.
type Builder struct {
	interner *intern.Interner
	sourceMap *source.Map
	sink     *diag.Sink
	cacheDir string
	cacheVersion string

	elabConfig elaborate.Config

	family string
	device string

	placementConstraints *pnr.PlacementConstraints
	timingConstraints    *timing.Constraints

	bitstreamGen    bitstream.BitstreamGenerator
	bitstreamFormat bitstream.BitstreamFormat
	wantBitstream   bool
	wantTiming      bool
}

// NewBuilder returns a Builder with a fresh interner, source map, and
// slog-backed diagnostic sink — the shared, process-scoped resources §5
// says are constructed once per compile and passed down by reference.
func NewBuilder() Builder {
	return Builder{
		interner:  intern.New(),
		sourceMap: source.NewMap(),
		sink:      diag.NewSink(nil),
	}
}

// WithInterner overrides the default interner, e.g. to share one across
// multiple compiles in the same process.
func (b Builder) WithInterner(in *intern.Interner) Builder {
	b.interner = in
	return b
}

// WithSourceMap overrides the default source map.
func (b Builder) WithSourceMap(sm *source.Map) Builder {
	b.sourceMap = sm
	return b
}

// WithSink overrides the default diagnostic sink.
func (b Builder) WithSink(sink *diag.Sink) Builder {
	b.sink = sink
	return b
}

// WithCache points the build at an on-disk incremental-build cache
// directory and compiler version string (§4.E). Build opens the cache and
// attaches it to Result.Cache; the stages Build runs neither read from nor
// write to it, so every Build runs the full pipeline whether or not a cache
// directory is set.
func (b Builder) WithCache(dir, version string) Builder {
	b.cacheDir = dir
	b.cacheVersion = version
	return b
}

// WithTop sets the elaboration configuration's declared top module.
func (b Builder) WithTop(top string) Builder {
	b.elabConfig.Project.Top = top
	return b
}

// WithArchitecture selects the target device family and part (§4.G,
// §6's load_architecture contract). An unrecognized family fails at
// Build time; an unrecognized device within a known family falls back to
// that family's smallest part.
func (b Builder) WithArchitecture(family, device string) Builder {
	b.family = family
	b.device = device
	return b
}

// WithPlacementConstraints overrides the default PnR placement constraints
// (seed 0, no fixed sites, default iteration cap).
func (b Builder) WithPlacementConstraints(c *pnr.PlacementConstraints) Builder {
	b.placementConstraints = c
	return b
}

// WithTimingAnalysis requests that Build run static timing analysis over
// the constructed timing graph using the given constraints, attaching the
// resulting report to Result.TimingReport.
func (b Builder) WithTimingAnalysis(c *timing.Constraints) Builder {
	b.timingConstraints = c
	b.wantTiming = true
	return b
}

// WithBitstream requests that Build run the given generator over the
// placed-and-routed netlist, attaching the result to Result.Bitstream.
func (b Builder) WithBitstream(gen bitstream.BitstreamGenerator, format bitstream.BitstreamFormat) Builder {
	b.bitstreamGen = gen
	b.bitstreamFormat = format
	b.wantBitstream = true
	return b
}

// Result bundles every artifact a Build call produced. Fields beyond
// Design are nil if the corresponding stage was skipped or failed before
// reaching them.
type Result struct {
	Design       *ir.Design
	Mapped       *synth.MappedDesign
	Netlist      *pnr.PnrNetlist
	TimingGraph  *timing.Graph
	TimingReport *timing.Report
	Bitstream    *bitstream.Bitstream

	Arch           arch.Architecture
	UsedFallback   bool // true if the requested device name was unrecognized
	Resources      arch.ResourceUsage
	Cache          *cache.Cache
}

// Build runs the full elaborate → synthesize → place-and-route pipeline
// over parsed, plus any optional trailing stages this Builder was
// configured to run. A fatal error at any stage aborts the remaining
// stages and is returned wrapped with the stage name (§7).
func (b Builder) Build(parsed *elaborate.ParsedDesign) (*Result, error) {
	result := &Result{}

	if b.cacheDir != "" {
		result.Cache = cache.LoadOrCreate(b.cacheDir, b.cacheVersion)
	}

	design, err := elaborate.Elaborate(parsed, b.elabConfig, b.sourceMap, b.interner, b.sink)
	if err != nil {
		return result, errors.Wrap(err, "pipeline: elaborate")
	}
	result.Design = design

	a, err := arch.Load(b.family, b.device)
	if err != nil {
		return result, errors.Wrap(err, "pipeline: load architecture")
	}
	result.Arch = a
	result.UsedFallback = !strings.EqualFold(a.DeviceName(), b.device)

	mapped := synth.SynthesizeDesign(design, a, b.interner, b.sink)
	result.Mapped = mapped
	if top, ok := mapped.Modules[mapped.Top]; ok {
		result.Resources = top.Resources
	}

	netlist, graph, err := pnr.PlaceAndRoute(mapped, a, b.placementConstraints, b.interner, b.sink)
	if err != nil {
		return result, errors.Wrap(err, "pipeline: place and route")
	}
	result.Netlist = netlist
	result.TimingGraph = graph

	if b.wantTiming {
		constraints := b.timingConstraints
		if constraints == nil {
			constraints = &timing.Constraints{}
		}
		report, err := timing.Analyze(graph, constraints)
		if err != nil {
			return result, errors.Wrap(err, "pipeline: timing analysis")
		}
		result.TimingReport = report
	}

	if b.wantBitstream {
		bs, err := b.bitstreamGen.Generate(netlist, a, b.bitstreamFormat, b.sink)
		if err != nil {
			return result, errors.Wrap(err, "pipeline: bitstream generation")
		}
		result.Bitstream = bs
	}

	return result, nil
}

// RenderDiagnostics writes every diagnostic the compile has emitted so
// far to w as a table, using b's source map for location resolution
// (§7's terminal renderer, wired here so a driver gets it for free
// instead of reaching into diag directly).
func (b Builder) RenderDiagnostics(w io.Writer) {
	diag.RenderTerminal(w, b.sourceMap, b.sink.All())
}

// RenderResourceReport writes the synthesized design's resource tally as
// a single line, mirroring the teacher's mix of go-pretty tables for
// multi-row reports and plain Fprintf for one-off summaries.
func (r *Result) RenderResourceReport(w io.Writer) {
	fmt.Fprintf(w, "LUTs: %d  FFs: %d  BRAM: %d  DSP: %d  IO: %d  PLL: %d\n",
		r.Resources.Luts, r.Resources.Ffs, r.Resources.Bram, r.Resources.Dsp, r.Resources.Io, r.Resources.Pll)
}

// Simulate runs behavioral simulation directly over an elaborated Design,
// bypassing synthesis and PnR entirely, per §4.K's "Simulation consumes
// the Design (not the mapped or placed form)" contract. maxCycles bounds
// the run the way simulate.Builder.WithMaxCycles does.
func (b Builder) Simulate(design *ir.Design, freq sim.Freq, maxCycles int) *simulate.SimulationResult {
	engine := sim.NewSerialEngine()
	simulator := simulate.NewBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithDesign(design).
		WithInterner(b.interner).
		WithMaxCycles(maxCycles).
		Build("sim")
	return simulator.Run()
}
