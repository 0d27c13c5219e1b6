package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/ui/theme"
)

// CircuitPanel renders the editable parts of a circuit: source, switch and
// loads. selected is the highlighted load, or -1 for none.
func CircuitPanel(snap circuit.Snapshot, selected int) string {
	var b strings.Builder

	sw := theme.Correct.Render("closed")
	if !snap.SwitchClosed {
		sw = theme.Incorrect.Render("open")
	}
	fmt.Fprintf(&b, "%s  %s    %s %s    %s %s\n",
		theme.TableHeader.Render("Wiring"), theme.Body.Render(snap.Topology.DisplayName()),
		theme.TableHeader.Render("Source"), theme.Body.Render(circuit.FormatValue(snap.Voltage)+" V"),
		theme.TableHeader.Render("Switch"), sw)

	for i, l := range snap.Loads {
		cursor, style := "  ", theme.Unselected
		if i == selected {
			cursor, style = "▸ ", theme.Selected
		}
		line := fmt.Sprintf("%s%-3s %5s Ω", cursor, circuit.LoadLabel(i), circuit.FormatValue(l.R))
		b.WriteString("\n" + style.Render(line))
		if l.Fault != circuit.FaultNormal {
			b.WriteString("  " + theme.Fault.Render(l.Fault.Status()))
		}
	}
	return b.String()
}

var resultColumns = []struct {
	title string
	width int
}{
	{"Load", 5}, {"V", 8}, {"I", 8}, {"R", 8}, {"P", 8}, {"Status", 16},
}

// ResultTable renders a solved circuit: one row per load, the totals, the
// flow indicator and any fault notes.
func ResultTable(res circuit.Result) string {
	var b strings.Builder

	header := make([]string, len(resultColumns))
	for i, c := range resultColumns {
		header[i] = fmt.Sprintf("%-*s", c.width, c.title)
	}
	b.WriteString(theme.TableHeader.Render(strings.Join(header, " ")))

	for _, row := range res.Rows {
		cells := []string{
			row.Label,
			circuit.FormatValue(row.V) + " V",
			circuit.FormatValue(row.I) + " A",
			circuit.FormatValue(row.R) + " Ω",
			circuit.FormatValue(row.P) + " W",
		}
		var line strings.Builder
		for i, cell := range cells {
			fmt.Fprintf(&line, "%-*s ", resultColumns[i].width, cell)
		}
		b.WriteString("\n" + theme.Body.Render(line.String()) + statusStyle(row.Status))
	}

	fmt.Fprintf(&b, "\n\n%s  Rtotal %s Ω   Itotal %s A   Ptotal %s W",
		FlowIndicator(res.HasFlow),
		circuit.FormatValue(res.TotalR),
		circuit.FormatValue(res.TotalI),
		circuit.FormatValue(res.TotalP))

	for _, n := range res.Notes {
		b.WriteString("\n" + theme.Fault.Render("! "+n))
	}
	return b.String()
}

// FlowIndicator shows whether current is flowing.
func FlowIndicator(flowing bool) string {
	if flowing {
		return theme.FlowOn.Render("● current flowing")
	}
	return theme.FlowOff.Render("○ no current")
}

func statusStyle(status string) string {
	switch status {
	case circuit.StatusNormal:
		return theme.Correct.Render(status)
	case circuit.StatusSwitchOpen, circuit.StatusNoCurrent:
		return theme.FlowOff.Render(status)
	default:
		return theme.Fault.Render(status)
	}
}
