package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/session"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a circuit and print every load's V, I, R and P",
	Long: `Solve a circuit described by flags or a JSON file.

Loads are given as R or R:fault, e.g. --load 6 --load 4:high --load 3:open.
Faults are normal, high, open and short.`,
	Example: `  ohmlab solve --topology series --voltage 12 --load 2 --load 4
  ohmlab solve --file circuit.json --json`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().String("topology", "simple", "Wiring: simple, series or parallel")
	solveCmd.Flags().Float64("voltage", session.DefaultVoltage, "Source voltage")
	solveCmd.Flags().StringArray("load", nil, "Load as R[:fault] (repeatable)")
	solveCmd.Flags().Bool("switch-open", false, "Solve with the switch open")
	solveCmd.Flags().String("file", "", "Read the circuit from a JSON file instead of flags")
	solveCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func runSolve(cmd *cobra.Command, args []string) error {
	snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	res := circuit.Solve(snap)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeResultJSON(cmd.OutOrStdout(), snap, res)
	}
	writeResultText(cmd.OutOrStdout(), snap, res)
	return nil
}

// snapshotFromFlags builds the circuit from --file, or from the other flags.
func snapshotFromFlags(cmd *cobra.Command) (circuit.Snapshot, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return readSnapshotFile(path)
	}

	topoVal, _ := cmd.Flags().GetString("topology")
	voltage, _ := cmd.Flags().GetFloat64("voltage")
	loadVals, _ := cmd.Flags().GetStringArray("load")
	switchOpen, _ := cmd.Flags().GetBool("switch-open")

	topo, err := circuit.ParseTopology(topoVal)
	if err != nil {
		return circuit.Snapshot{}, err
	}

	snap := circuit.Snapshot{Topology: topo, Voltage: voltage, SwitchClosed: !switchOpen}
	for _, v := range loadVals {
		l, err := parseLoad(v)
		if err != nil {
			return circuit.Snapshot{}, err
		}
		snap.Loads = append(snap.Loads, l)
	}
	if len(snap.Loads) == 0 {
		lo, _ := circuit.LoadRange(topo)
		for i := 0; i < lo; i++ {
			snap.Loads = append(snap.Loads, circuit.LoadConfig{R: session.DefaultLoadR})
		}
	}

	if err := snap.Validate(); err != nil {
		return circuit.Snapshot{}, err
	}
	return snap, nil
}

func readSnapshotFile(path string) (circuit.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return circuit.Snapshot{}, fmt.Errorf("open circuit file: %w", err)
	}
	defer f.Close()

	snap, err := circuit.LoadSnapshot(f)
	if err != nil {
		return circuit.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// parseLoad parses "R" or "R:fault".
func parseLoad(s string) (circuit.LoadConfig, error) {
	rVal, faultVal, _ := strings.Cut(s, ":")
	r, err := strconv.ParseFloat(strings.TrimSpace(rVal), 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return circuit.LoadConfig{}, fmt.Errorf("invalid load %q: resistance must be a number", s)
	}
	fault, err := circuit.ParseFault(faultVal)
	if err != nil {
		return circuit.LoadConfig{}, fmt.Errorf("invalid load %q: %w", s, err)
	}
	return circuit.LoadConfig{R: r, Fault: fault}, nil
}

func writeResultText(w io.Writer, snap circuit.Snapshot, res circuit.Result) {
	sw := "closed"
	if !snap.SwitchClosed {
		sw = "open"
	}
	fmt.Fprintf(w, "%s circuit, %s V, switch %s\n\n", snap.Topology.DisplayName(), circuit.FormatValue(snap.Voltage), sw)

	fmt.Fprintf(w, "%-5s  %10s  %10s  %10s  %10s  %s\n", "Load", "V", "I", "R", "P", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, row := range res.Rows {
		fmt.Fprintf(w, "%-5s  %10s  %10s  %10s  %10s  %s\n",
			row.Label, circuit.FormatValue(row.V), circuit.FormatValue(row.I), circuit.FormatValue(row.R), circuit.FormatValue(row.P), row.Status)
	}

	fmt.Fprintf(w, "\nRtotal = %s Ω\nItotal = %s A\nPtotal = %s W\n",
		circuit.FormatValue(res.TotalR), circuit.FormatValue(res.TotalI), circuit.FormatValue(res.TotalP))
	if !res.HasFlow {
		fmt.Fprintln(w, "No current is flowing.")
	}
	for _, n := range res.Notes {
		fmt.Fprintln(w, "Note:", n)
	}
}

// jsonFloat encodes infinities as the string "Infinity", which plain JSON
// numbers cannot carry.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(f), 1) {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(float64(f))
}

type jsonRow struct {
	Label  string    `json:"label"`
	V      jsonFloat `json:"v"`
	I      jsonFloat `json:"i"`
	R      jsonFloat `json:"r"`
	P      jsonFloat `json:"p"`
	Status string    `json:"status"`
}

type jsonResult struct {
	Topology       string      `json:"topology"`
	Voltage        float64     `json:"voltage"`
	SwitchClosed   bool        `json:"switch_closed"`
	TotalR         jsonFloat   `json:"total_r"`
	TotalI         jsonFloat   `json:"total_i"`
	TotalP         jsonFloat   `json:"total_p"`
	HasFlow        bool        `json:"has_flow"`
	Rows           []jsonRow   `json:"rows"`
	Notes          []string    `json:"notes"`
	BranchCurrents []jsonFloat `json:"branch_currents,omitempty"`
}

func writeResultJSON(w io.Writer, snap circuit.Snapshot, res circuit.Result) error {
	out := jsonResult{
		Topology:     snap.Topology.String(),
		Voltage:      snap.Voltage,
		SwitchClosed: snap.SwitchClosed,
		TotalR:       jsonFloat(res.TotalR),
		TotalI:       jsonFloat(res.TotalI),
		TotalP:       jsonFloat(res.TotalP),
		HasFlow:      res.HasFlow,
		Rows:         make([]jsonRow, len(res.Rows)),
		Notes:        append([]string{}, res.Notes...),
	}
	for i, row := range res.Rows {
		out.Rows[i] = jsonRow{
			Label:  row.Label,
			V:      jsonFloat(row.V),
			I:      jsonFloat(row.I),
			R:      jsonFloat(row.R),
			P:      jsonFloat(row.P),
			Status: row.Status,
		}
	}
	for _, c := range res.BranchCurrents {
		out.BranchCurrents = append(out.BranchCurrents, jsonFloat(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
