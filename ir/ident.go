package ir

import (
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/source"
)

// NameID is the interned-string handle type used for every name in the IR
// (module names, signal names, port names, param names).
type NameID = intern.Ident

// Span is the byte-range type used on every IR node for diagnostics.
type Span = source.Span

