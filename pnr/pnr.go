// Package pnr implements place and route: flattening a synth.MappedDesign
// into a flat cell/net/pin netlist, simulated-annealing placement,
// PathFinder-style routing, and construction of the device-independent
// timing graph (§4.I).
package pnr

import (
	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/synth"
	"github.com/Stateford/aion-sub002/timing"
)

// SiteID names a placement location on the device. Phase-2 sites are
// synthetic grid coordinates packed into a single integer; a concrete
// device model may interpret the same handle against a real site table.
type SiteID int

// PnrCellID, PnrNetID, PnrPinID index a PnrNetlist's flat cell/net/pin
// lists.
type PnrCellID int
type PnrNetID int
type PnrPinID int

// PnrCellTypeKind discriminates PnrCellType's payload (§3).
type PnrCellTypeKind int

const (
	CellLut PnrCellTypeKind = iota
	CellDff
	CellCarry
	CellBram
	CellDsp
	CellIobuf
	CellPll
)

// PnrCellType is the physical primitive kind a PnrCell instantiates.
type PnrCellType struct {
	Kind PnrCellTypeKind

	// Lut
	LutInputs uint32
	LutInit   uint64

	// Iobuf
	IobufDirection IobufDirection
	IobufStandard  string

	// Bram/Dsp/Pll opaque config, identified by name to keep the struct
	// comparable the same way ir.CellKind keeps HardConfig as a string tag.
	HardConfig string
}

// IobufDirection is the signal direction an I/O buffer drives.
type IobufDirection int

const (
	IobufInput IobufDirection = iota
	IobufOutput
	IobufInOut
)

// PnrCell is one physical primitive in the flattened netlist (§3).
type PnrCell struct {
	ID         PnrCellID
	Name       string
	CellType   PnrCellType
	Placement  *SiteID
	IsFixed    bool
	PinIDs     []PnrPinID
	SourceName string // the originating ir.Cell's name, for diagnostics
}

// IsPlaced reports whether this cell has a site assignment.
func (c *PnrCell) IsPlaced() bool { return c.Placement != nil }

// PnrPin is one named connection point on a cell (§3).
type PnrPin struct {
	ID        PnrPinID
	Name      string
	Direction PinDirection
	Cell      PnrCellID
	Net       *PnrNetID
}

// PinDirection is the direction of a pin's data flow.
type PinDirection int

const (
	PinInput PinDirection = iota
	PinOutput
	PinInOut
)

// PnrNet is one net: a single driver pin and its sink pins, plus any
// routing result (§3).
type PnrNet struct {
	ID             PnrNetID
	Name           string
	Driver         PnrPinID
	Sinks          []PnrPinID
	Routing        *RouteTree
	TimingCritical bool
}

// PnrNetlist is the flat placement-and-routing working set: cells, nets,
// pins, plus rebuildable name indices (§3).
type PnrNetlist struct {
	Cells []PnrCell
	Nets  []PnrNet
	Pins  []PnrPin

	cellByName map[string]PnrCellID
	netByName  map[string]PnrNetID
}

// NewPnrNetlist returns an empty netlist.
func NewPnrNetlist() *PnrNetlist {
	return &PnrNetlist{
		cellByName: make(map[string]PnrCellID),
		netByName:  make(map[string]PnrNetID),
	}
}

// AddCell appends a new cell and registers it by name.
func (n *PnrNetlist) AddCell(name string, ct PnrCellType, fixed bool) PnrCellID {
	id := PnrCellID(len(n.Cells))
	n.Cells = append(n.Cells, PnrCell{ID: id, Name: name, CellType: ct, IsFixed: fixed, SourceName: name})
	n.cellByName[name] = id
	return id
}

// AddPin appends a new pin owned by cell.
func (n *PnrNetlist) AddPin(name string, dir PinDirection, cell PnrCellID) PnrPinID {
	id := PnrPinID(len(n.Pins))
	n.Pins = append(n.Pins, PnrPin{ID: id, Name: name, Direction: dir, Cell: cell})
	n.Cells[cell].PinIDs = append(n.Cells[cell].PinIDs, id)
	return id
}

// AddNet appends a new net with the given driver pin (sinks are attached
// via ConnectSink), binding the driver pin's Net field.
func (n *PnrNetlist) AddNet(name string, driver PnrPinID) PnrNetID {
	id := PnrNetID(len(n.Nets))
	n.Nets = append(n.Nets, PnrNet{ID: id, Name: name, Driver: driver})
	n.netByName[name] = id
	netID := id
	n.Pins[driver].Net = &netID
	return id
}

// ConnectSink appends sink to net's sink list and binds the sink pin's Net
// field.
func (n *PnrNetlist) ConnectSink(net PnrNetID, sink PnrPinID) {
	nt := &n.Nets[net]
	nt.Sinks = append(nt.Sinks, sink)
	netID := net
	n.Pins[sink].Net = &netID
}

// CellByName resolves a cell by its registered name.
func (n *PnrNetlist) CellByName(name string) (PnrCellID, bool) {
	id, ok := n.cellByName[name]
	return id, ok
}

// NetByName resolves a net by its registered name.
func (n *PnrNetlist) NetByName(name string) (PnrNetID, bool) {
	id, ok := n.netByName[name]
	return id, ok
}

// Cell returns a pointer to the cell with the given ID.
func (n *PnrNetlist) Cell(id PnrCellID) *PnrCell { return &n.Cells[id] }

// Net returns a pointer to the net with the given ID.
func (n *PnrNetlist) Net(id PnrNetID) *PnrNet { return &n.Nets[id] }

// Pin returns a pointer to the pin with the given ID.
func (n *PnrNetlist) Pin(id PnrPinID) *PnrPin { return &n.Pins[id] }

// CheckInvariants validates the §3 PnR invariants: every pin belongs to
// exactly one cell (true by construction), every net has exactly one
// driver pin whose direction is Output or InOut, and every sink pin's
// direction is Input or InOut.
func (n *PnrNetlist) CheckInvariants() error {
	for _, net := range n.Nets {
		driverPin := n.Pins[net.Driver]
		if driverPin.Direction != PinOutput && driverPin.Direction != PinInOut {
			return invariantError("net " + net.Name + " has a non-output driver pin")
		}
		for _, sinkID := range net.Sinks {
			sinkPin := n.Pins[sinkID]
			if sinkPin.Direction != PinInput && sinkPin.Direction != PinInOut {
				return invariantError("net " + net.Name + " has a non-input sink pin")
			}
		}
	}
	return nil
}

type invariantError string

func (e invariantError) Error() string { return string(e) }

// AllPlaced reports whether every non-fixed cell has a placement — the
// §8 testable PnR invariant.
func (n *PnrNetlist) AllPlaced() bool {
	for i := range n.Cells {
		c := &n.Cells[i]
		if !c.IsFixed && !c.IsPlaced() {
			return false
		}
	}
	return true
}

// PlaceAndRoute runs the full §4.I pipeline over a synthesized design:
// flatten, place, route, and build the derived timing graph. It returns
// the netlist and the timing graph together since both are consumed
// downstream (bitstream from the netlist, STA from the graph).
func PlaceAndRoute(mapped *synth.MappedDesign, a arch.Architecture, constraints *PlacementConstraints, in *intern.Interner, sink *diag.Sink) (*PnrNetlist, *timing.Graph, error) {
	netlist, err := Convert(mapped, in, sink)
	if err != nil {
		return nil, nil, err
	}

	Place(netlist, a, constraints)
	Route(netlist, a, sink)

	graph := BuildTimingGraph(netlist, a)

	return netlist, graph, nil
}
