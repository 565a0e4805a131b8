package pnr

import (
	"fmt"

	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
	"github.com/Stateford/aion-sub002/synth"
)

// defaultIOStandard is the default I/O standard constraints may override
// (§4.I.1).
const defaultIOStandard = "LVCMOS33"

// Convert flattens the top module of mapped into a flat PnrNetlist
// (§4.I.1): one fixed Iobuf per port, one PnrCell per module cell, and
// nets rebuilt from signal connectivity.
func Convert(mapped *synth.MappedDesign, in *intern.Interner, sink *diag.Sink) (*PnrNetlist, error) {
	mm, ok := mapped.Modules[mapped.Top]
	if !ok {
		return nil, fmt.Errorf("pnr: mapped design has no top module %d", mapped.Top)
	}
	mod := mm.Module
	n := NewPnrNetlist()

	// driverPin[sig] = the PnrPinID driving that signal; sinkPins[sig] =
	// every PnrPinID reading it. Built up as cells/IO buffers are created,
	// then resolved into nets in one pass.
	driverPin := make(map[ir.SignalID]PnrPinID)
	sinkPins := make(map[ir.SignalID][]PnrPinID)

	for _, port := range mod.Ports {
		name := in.MustResolve(port.Name)
		dir := IobufOutput
		pinDir := PinInput // the buffer's internal-facing pin direction
		switch port.Direction {
		case ir.DirIn:
			// An input port's IO buffer *drives* the internal net.
			dir = IobufInput
			pinDir = PinOutput
		case ir.DirOut:
			dir = IobufOutput
			pinDir = PinInput
		case ir.DirInOut:
			dir = IobufInOut
			pinDir = PinInOut
		}

		cellID := n.AddCell("io_"+name, PnrCellType{
			Kind:           CellIobuf,
			IobufDirection: dir,
			IobufStandard:  defaultIOStandard,
		}, true)
		pinID := n.AddPin(name, pinDir, cellID)

		switch pinDir {
		case PinOutput, PinInOut:
			driverPin[port.Signal] = pinID
		case PinInput:
			sinkPins[port.Signal] = append(sinkPins[port.Signal], pinID)
		}
	}

	mod.LiveCells(func(cellID ir.CellID, c *ir.Cell) bool {
		name := in.MustResolve(c.Name)
		ct := convertCellKind(c.Kind)
		pnrCellID := n.AddCell(name, ct, false)

		for _, conn := range c.Connections {
			portName := in.MustResolve(conn.PortName)
			pinDir := PinInput
			switch conn.Direction {
			case ir.DirOut:
				pinDir = PinOutput
			case ir.DirInOut:
				pinDir = PinInOut
			}
			pinID := n.AddPin(portName, pinDir, pnrCellID)

			for _, sigID := range flattenConnSignals(conn.Signal) {
				switch pinDir {
				case PinOutput, PinInOut:
					driverPin[sigID] = pinID
				case PinInput:
					sinkPins[sigID] = append(sinkPins[sigID], pinID)
				}
			}
		}
		return true
	})

	// Build nets from connectivity. Every signal with at least one pin
	// attached becomes one net.
	allSignals := make(map[ir.SignalID]bool)
	for sig := range driverPin {
		allSignals[sig] = true
	}
	for sig := range sinkPins {
		allSignals[sig] = true
	}

	for sig := range allSignals {
		sigName := fmt.Sprintf("sig_%d", sig)
		driver, hasDriver := driverPin[sig]
		sinks := sinkPins[sig]

		if !hasDriver {
			if len(sinks) == 0 {
				continue
			}
			// Synthesize a dummy driver so the net stays well-formed
			// (§4.I.1).
			dummyCell := n.AddCell("_dummy_driver_"+sigName, PnrCellType{Kind: CellLut, LutInputs: 0, LutInit: 0}, false)
			driver = n.AddPin("O", PinOutput, dummyCell)
			if sink != nil {
				sink.Emit(diag.Diagnostic{
					Code:     diag.CodeSyntheticDriver,
					Severity: diag.Warning,
					Message:  fmt.Sprintf("signal %s has sinks but no driver; synthesized a dummy driver", sigName),
				})
			}
		}

		netID := n.AddNet(sigName, driver)
		for _, s := range sinks {
			n.ConnectSink(netID, s)
		}
	}

	return n, nil
}

// convertCellKind maps an ir.CellKind onto a PnrCellType per the §4.I.1
// table.
func convertCellKind(k ir.CellKind) PnrCellType {
	switch k.Tag {
	case ir.TagAnd, ir.TagOr, ir.TagXor, ir.TagEq, ir.TagLt:
		return PnrCellType{Kind: CellLut, LutInputs: 2, LutInit: 0}
	case ir.TagNot:
		return PnrCellType{Kind: CellLut, LutInputs: 1, LutInit: 0}
	case ir.TagMux:
		return PnrCellType{Kind: CellLut, LutInputs: 3, LutInit: 0}
	case ir.TagLut:
		return PnrCellType{Kind: CellLut, LutInputs: k.LutInputs, LutInit: k.LutInit}
	case ir.TagDff:
		return PnrCellType{Kind: CellDff}
	case ir.TagAdd, ir.TagSub, ir.TagCarry:
		return PnrCellType{Kind: CellCarry}
	case ir.TagBram:
		return PnrCellType{Kind: CellBram, HardConfig: k.HardConfig}
	case ir.TagDsp:
		return PnrCellType{Kind: CellDsp, HardConfig: k.HardConfig}
	case ir.TagPll:
		return PnrCellType{Kind: CellPll, HardConfig: k.HardConfig}
	case ir.TagIobuf:
		return PnrCellType{Kind: CellIobuf, IobufStandard: defaultIOStandard}
	default:
		// Catch-all for Mul/Shl/Shr/Latch/Concat/Slice/Repeat/Instance/
		// Const/BlackBox (§4.I.1: "anything else").
		return PnrCellType{Kind: CellLut, LutInputs: 2, LutInit: 0}
	}
}

func flattenConnSignals(ref ir.SignalRef) []ir.SignalID {
	switch ref.Tag {
	case ir.RefSignal, ir.RefSlice:
		return []ir.SignalID{ref.Signal}
	case ir.RefConcat:
		var out []ir.SignalID
		for _, p := range ref.Concat {
			out = append(out, flattenConnSignals(p)...)
		}
		return out
	default:
		return nil
	}
}
