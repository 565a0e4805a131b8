package ir

// SignalKind classifies what role a signal plays in its module.
type SignalKind int

const (
	SignalPort SignalKind = iota
	SignalWire
	SignalReg
	SignalParameter
)

// Signal is a named, typed storage location in a module.
type Signal struct {
	ID          SignalID
	Name        NameID
	Type        TypeID
	Kind        SignalKind
	Init        *ConstValue // optional
	ClockDomain *ClockDomainID
	Span        Span
}

// ClockDomainID indexes a Module's ClockDomains slice.
type ClockDomainID int

// ClockDomain tags a group of signals driven by a common clock/edge.
type ClockDomain struct {
	Name   NameID
	Signal SignalID // the clock source signal
}

// PortDirection is the direction of a port or a cell connection.
type PortDirection int

const (
	DirIn PortDirection = iota
	DirOut
	DirInOut
	// DirInput/DirOutput are aliases used by Cell.Input/OutputSignals to
	// read naturally at call sites.
	DirInput  = DirIn
	DirOutput = DirOut
)

// Port is a module-level port: its name, direction, type, and the signal
// that backs it.
type Port struct {
	ID        PortID
	Name      NameID
	Direction PortDirection
	Type      TypeID
	Signal    SignalID
	Span      Span
}

// Param is a module parameter: a name and a default constant value.
type Param struct {
	Name    NameID
	Default ConstValue
}
