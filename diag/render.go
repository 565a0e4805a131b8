package diag

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Stateford/aion-sub002/source"
)

// RenderTerminal materializes every diagnostic as one titled table, in the
// order given, with each secondary span on its own row right after its
// diagnostic, the way the teacher's core.PrintState and
// verify.WriteReport lay out titled tables of compiler state. An empty
// list prints "no diagnostics" instead. sm may be nil, in which case
// locations are rendered as raw file/offset pairs instead of resolved
// paths.
func RenderTerminal(w io.Writer, sm *source.Map, items []Diagnostic) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no diagnostics")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Diagnostics")
	t.AppendHeader(table.Row{"Severity", "Code", "Location", "Message"})

	for _, d := range items {
		t.AppendRow(table.Row{
			d.Severity.String(),
			d.Code,
			formatLocation(sm, d.Primary),
			d.Message,
		})
		for _, sec := range d.Secondary {
			t.AppendRow(table.Row{"", "", formatLocation(sm, sec.Span), sec.Label})
		}
	}

	t.Render()
}

func formatLocation(sm *source.Map, s source.Span) string {
	if s.IsDummy() {
		return "<synthetic>"
	}
	path := ""
	if sm != nil {
		path = sm.Path(s.File)
	}
	if path == "" {
		return fmt.Sprintf("file#%d:%d-%d", s.File, s.Start, s.End)
	}
	return fmt.Sprintf("%s:%d-%d", path, s.Start, s.End)
}

// jsonDiagnostic is the wire shape for RenderJSON, independent of the
// internal Diagnostic struct so field renames don't silently change the
// tooling contract.
type jsonDiagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	File     uint32 `json:"file"`
	Start    uint32 `json:"start"`
	End      uint32 `json:"end"`
	Message  string `json:"message"`
}

// RenderJSON emits every diagnostic verbatim as a JSON array, for tooling
// consumers (§7).
func RenderJSON(w io.Writer, items []Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		out = append(out, jsonDiagnostic{
			Code:     d.Code,
			Severity: d.Severity.String(),
			File:     uint32(d.Primary.File),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
