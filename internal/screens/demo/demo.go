// Package demo is the circuit workbench screen: edit a circuit and watch
// the solved values update on every key press.
package demo

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/scenario"
	"github.com/abhisek/ohmlab/internal/screen"
	"github.com/abhisek/ohmlab/internal/session"
	"github.com/abhisek/ohmlab/internal/ui/components"
	"github.com/abhisek/ohmlab/internal/ui/layout"
	"github.com/abhisek/ohmlab/internal/ui/theme"
)

// DemoScreen edits a shared workbench.
type DemoScreen struct {
	bench *session.Workbench
	gen   *scenario.Generator
	flash string
}

var _ screen.Screen = (*DemoScreen)(nil)
var _ screen.KeyHintProvider = (*DemoScreen)(nil)
var _ screen.StatusProvider = (*DemoScreen)(nil)

// New creates a DemoScreen. gen may be nil, which disables random circuits.
func New(bench *session.Workbench, gen *scenario.Generator) *DemoScreen {
	return &DemoScreen{bench: bench, gen: gen}
}

func (d *DemoScreen) Init() tea.Cmd {
	return nil
}

func (d *DemoScreen) Title() string {
	return "Circuit Workbench"
}

func (d *DemoScreen) Status() string {
	return components.FlowIndicator(d.bench.Solve().HasFlow)
}

func (d *DemoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "t", Description: "Wiring"},
		{Key: "+/-", Description: "Volts"},
		{Key: "↑↓←→", Description: "Load/Ohms"},
		{Key: "f", Description: "Fault"},
		{Key: "s", Description: "Switch"},
		{Key: "a/x", Description: "Add/Del"},
		{Key: "r", Description: "Random"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DemoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	d.flash = ""
	switch kmsg.String() {
	case "t":
		d.bench.CycleTopology()
	case "+", "=":
		d.bench.SetVoltage(d.bench.Voltage() + session.VoltageStep)
	case "-", "_":
		d.bench.SetVoltage(d.bench.Voltage() - session.VoltageStep)
	case "up", "k":
		d.bench.Select(-1)
	case "down", "j":
		d.bench.Select(1)
	case "right", "l":
		d.bench.AdjustResistance(1)
	case "left", "h":
		d.bench.AdjustResistance(-1)
	case "f":
		d.bench.CycleFault()
	case "s":
		d.bench.ToggleSwitch()
	case "a":
		if !d.bench.AddLoad() {
			d.flash = addLoadLimit(d.bench.Topology())
		}
	case "x", "delete":
		if !d.bench.RemoveLoad() {
			d.flash = removeLoadLimit(d.bench.Topology())
		}
	case "r":
		if d.gen != nil {
			d.bench.Load(d.gen.Generate())
		}
	}
	return d, nil
}

func addLoadLimit(t circuit.Topology) string {
	if t == circuit.TopologySimple {
		return "A simple circuit has exactly one load. Press t to rewire."
	}
	return "That's the most loads this circuit can hold."
}

func removeLoadLimit(t circuit.Topology) string {
	if t == circuit.TopologySimple {
		return "A simple circuit needs its one load."
	}
	return t.DisplayName() + " circuits need at least two loads."
}

func (d *DemoScreen) View(width, height int) string {
	snap := d.bench.Snapshot()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Card.Render(components.CircuitPanel(snap, d.bench.Selected())))
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Render(components.ResultTable(circuit.Solve(snap))))
	if d.flash != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(d.flash))
	}
	return layout.Center(b.String(), width)
}
