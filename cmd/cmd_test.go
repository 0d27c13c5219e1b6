package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/problemgen"
)

func TestParseLoad(t *testing.T) {
	tests := []struct {
		input   string
		want    circuit.LoadConfig
		wantErr bool
	}{
		{"6", circuit.LoadConfig{R: 6}, false},
		{"4.5:high", circuit.LoadConfig{R: 4.5, Fault: circuit.FaultHigh}, false},
		{"3:OPEN", circuit.LoadConfig{R: 3, Fault: circuit.FaultOpen}, false},
		{"2:short", circuit.LoadConfig{R: 2, Fault: circuit.FaultShort}, false},
		{"2:", circuit.LoadConfig{R: 2}, false},
		{"abc", circuit.LoadConfig{}, true},
		{"2:melted", circuit.LoadConfig{}, true},
	}
	for _, tc := range tests {
		got, err := parseLoad(tc.input)
		if tc.wantErr {
			assert.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestSnapshotFromFlags(t *testing.T) {
	cmd := solveCmd
	t.Cleanup(func() { resetFlags(t) })

	require.NoError(t, cmd.Flags().Set("topology", "parallel"))
	require.NoError(t, cmd.Flags().Set("load", "6"))
	require.NoError(t, cmd.Flags().Set("load", "3:open"))
	require.NoError(t, cmd.Flags().Set("switch-open", "true"))

	snap, err := snapshotFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, circuit.TopologyParallel, snap.Topology)
	assert.False(t, snap.SwitchClosed)
	assert.Equal(t, []circuit.LoadConfig{{R: 6}, {R: 3, Fault: circuit.FaultOpen}}, snap.Loads)
}

func TestSnapshotFromFlags_DefaultLoads(t *testing.T) {
	t.Cleanup(func() { resetFlags(t) })
	require.NoError(t, solveCmd.Flags().Set("topology", "series"))

	snap, err := snapshotFromFlags(solveCmd)
	require.NoError(t, err)
	assert.Len(t, snap.Loads, 2)
}

func TestSnapshotFromFlags_TooManyLoadsForSimple(t *testing.T) {
	t.Cleanup(func() { resetFlags(t) })
	require.NoError(t, solveCmd.Flags().Set("load", "6"))
	require.NoError(t, solveCmd.Flags().Set("load", "6"))

	_, err := snapshotFromFlags(solveCmd)
	assert.ErrorIs(t, err, circuit.ErrLoadCount)
}

func TestSnapshotFromFlags_File(t *testing.T) {
	t.Cleanup(func() { resetFlags(t) })
	path := filepath.Join(t.TempDir(), "circuit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"topology":"series","voltage":9,"loads":[{"r":1},{"r":2}]}`), 0o644))
	require.NoError(t, solveCmd.Flags().Set("file", path))

	snap, err := snapshotFromFlags(solveCmd)
	require.NoError(t, err)
	assert.Equal(t, 9.0, snap.Voltage)
	assert.True(t, snap.SwitchClosed)
}

// resetFlags restores solve's flags to their defaults between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, name := range []string{"topology", "voltage", "switch-open", "file", "json"} {
		f := solveCmd.Flags().Lookup(name)
		require.NoError(t, f.Value.Set(f.DefValue))
	}
	// StringArray.Set appends, so the slice is replaced directly.
	type sliceValue interface{ Replace([]string) error }
	require.NoError(t, solveCmd.Flags().Lookup("load").Value.(sliceValue).Replace(nil))
}

func TestWriteResultJSON_Infinity(t *testing.T) {
	snap := circuit.Snapshot{
		Topology: circuit.TopologySeries, Voltage: 12, SwitchClosed: false,
		Loads: []circuit.LoadConfig{{R: 2}, {R: 4}},
	}
	var buf bytes.Buffer
	require.NoError(t, writeResultJSON(&buf, snap, circuit.Solve(snap)))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Infinity", out["total_r"])
	assert.Equal(t, 0.0, out["total_i"])
	assert.Equal(t, false, out["has_flow"])
	assert.Len(t, out["rows"], 2)
}

func TestWriteResultText(t *testing.T) {
	snap := circuit.Snapshot{
		Topology: circuit.TopologySeries, Voltage: 12, SwitchClosed: true,
		Loads: []circuit.LoadConfig{{R: 2}, {R: 4}},
	}
	var buf bytes.Buffer
	writeResultText(&buf, snap, circuit.Solve(snap))

	out := buf.String()
	assert.Contains(t, out, "Series circuit, 12 V, switch closed")
	assert.Contains(t, out, "Rtotal = 6 Ω")
	assert.Contains(t, out, "Itotal = 2 A")
	assert.NotContains(t, out, "No current")
}

func TestWriteResultText_RoundsToTwoPlaces(t *testing.T) {
	snap := circuit.Snapshot{
		Topology: circuit.TopologySeries, Voltage: 10, SwitchClosed: true,
		Loads: []circuit.LoadConfig{{R: 1}, {R: 1}, {R: 1}},
	}
	var buf bytes.Buffer
	writeResultText(&buf, snap, circuit.Solve(snap))

	out := buf.String()
	assert.Contains(t, out, "Itotal = 3.33 A")
	assert.NotContains(t, out, "3.333")
}

func TestJSONFloat(t *testing.T) {
	b, err := json.Marshal([]jsonFloat{1.5, jsonFloat(math.Inf(1))})
	require.NoError(t, err)
	assert.Equal(t, `[1.5,"Infinity"]`, string(b))
}

func TestPracticeLoop(t *testing.T) {
	snap := circuit.Snapshot{
		Topology: circuit.TopologySimple, Voltage: 12, SwitchClosed: true,
		Loads: []circuit.LoadConfig{{R: 6}},
	}
	builder := problemgen.New(rand.New(rand.NewSource(1)), problemgen.DefaultConfig())
	in := strings.NewReader("6\n2 A\n24000\n")
	var out bytes.Buffer

	practiceLoop(in, &out, builder, problemgen.Experienced, 1, func() circuit.Snapshot { return snap })

	assert.Contains(t, out.String(), "Analyze the simple circuit")
	assert.Contains(t, out.String(), "Ptotal = 12 × 2 = 24 W")
	assert.Contains(t, out.String(), "Summary: 2/3 points")
	assert.Contains(t, out.String(), "Hint: Off by a factor of 1000")
}

func TestPracticeLoop_InputClosed(t *testing.T) {
	snap := circuit.Snapshot{
		Topology: circuit.TopologySimple, Voltage: 12, SwitchClosed: true,
		Loads: []circuit.LoadConfig{{R: 6}},
	}
	builder := problemgen.New(rand.New(rand.NewSource(1)), problemgen.DefaultConfig())
	var out bytes.Buffer

	practiceLoop(strings.NewReader(""), &out, builder, problemgen.Beginner, 3, func() circuit.Snapshot { return snap })

	assert.Contains(t, out.String(), "(input closed)")
	assert.Contains(t, out.String(), "Summary: 0/0 points")
}

func TestDisplayVersion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"(devel)", "(devel)"},
		{"1.2", "v1.2.0"},
		{"v0.3.1", "v0.3.1"},
		{"v1.0.0+build.5", "v1.0.0"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, displayVersion(tc.in), tc.in)
	}
}
