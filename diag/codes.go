package diag

// Stable diagnostic codes (§6, §7). E2xx codes are elaboration diagnostics;
// W5xx codes are warnings emitted downstream of elaboration (PnR, bitstream).
const (
	CodeMissingTop           = "E201" // fatal: config.project.top not found
	CodeDuplicateModule      = "E202" // recoverable: duplicate module name
	CodeCircularInstantiation = "E207" // recoverable per-call, fails that elaboration
	CodeUnknownType          = "E208" // recoverable: unresolved type construct

	CodeUnplacedCell  = "W501" // unplaced cell skipped during bitstream assembly
	CodeStubbedRoute  = "W502" // unrouted/stubbed net's PIP bits skipped
	CodeUnmappableCell = "W503" // tech mapper declared a cell unmappable
	CodeSyntheticDriver = "W504" // PnR synthesized a dummy driver for a sink-only net
	CodeRoutingDidNotConverge = "W505" // PathFinder hit its iteration cap before congestion cleared
)
