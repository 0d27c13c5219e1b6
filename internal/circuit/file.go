package circuit

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const fileSchemaURL = "schema://ohmlab-circuit.json"

// fileSchema describes a circuit file.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topology": map[string]any{
			"type": "string",
			"enum": []any{"simple", "series", "parallel"},
		},
		"voltage": map[string]any{
			"type":    "number",
			"minimum": 0,
		},
		"switch_closed": map[string]any{
			"type": "boolean",
		},
		"loads": map[string]any{
			"type":     "array",
			"minItems": 1,
			"maxItems": MaxLoads,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"r": map[string]any{
						"type": "number",
					},
					"fault": map[string]any{
						"type": "string",
						"enum": []any{"normal", "high", "open", "short"},
					},
				},
				"required":             []any{"r"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"topology", "voltage", "loads"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// FileError describes why a circuit file was rejected.
type FileError struct {
	Stage string // "read", "parse", "schema" or "circuit"
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("circuit file %s: %v", e.Stage, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

type fileLoad struct {
	R     float64 `json:"r"`
	Fault string  `json:"fault"`
}

type fileCircuit struct {
	Topology     string     `json:"topology"`
	Voltage      float64    `json:"voltage"`
	SwitchClosed *bool      `json:"switch_closed"`
	Loads        []fileLoad `json:"loads"`
}

// LoadSnapshot reads a JSON circuit description, validates it against the
// circuit schema and returns the snapshot it describes.
func LoadSnapshot(r io.Reader) (Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, &FileError{Stage: "read", Err: err}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Snapshot{}, &FileError{Stage: "parse", Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := getFileSchema()
	if err != nil {
		return Snapshot{}, &FileError{Stage: "schema", Err: err}
	}
	if err := schema.Validate(parsed); err != nil {
		return Snapshot{}, &FileError{Stage: "schema", Err: fmt.Errorf("validation failed: %w", err)}
	}

	var fc fileCircuit
	if err := json.Unmarshal(raw, &fc); err != nil {
		return Snapshot{}, &FileError{Stage: "parse", Err: err}
	}

	snap, err := fc.snapshot()
	if err != nil {
		return Snapshot{}, &FileError{Stage: "circuit", Err: err}
	}
	return snap, nil
}

func (fc fileCircuit) snapshot() (Snapshot, error) {
	topo, err := ParseTopology(fc.Topology)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Topology:     topo,
		Voltage:      fc.Voltage,
		SwitchClosed: true,
	}
	if fc.SwitchClosed != nil {
		snap.SwitchClosed = *fc.SwitchClosed
	}
	for _, l := range fc.Loads {
		f, err := ParseFault(l.Fault)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Loads = append(snap.Loads, LoadConfig{R: l.R, Fault: f})
	}

	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// getFileSchema compiles the circuit schema on first use.
func getFileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the
		// Go literal through encoding/json.
		defBytes, err := json.Marshal(fileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(fileSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(fileSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}
