package problemgen

import (
	"strconv"

	"github.com/abhisek/ohmlab/internal/circuit"
)

// PartValue solves snap and returns the correct value of the part with the
// given id ("rtotal", "itotal", "ptotal", "v<n>" or "i<n>") for it. It lets
// callers ask what an answer would have been on a slightly different
// circuit.
func PartValue(id string, snap circuit.Snapshot) (float64, bool) {
	res := circuit.Solve(snap)
	switch id {
	case "rtotal":
		return res.TotalR, true
	case "itotal":
		return res.TotalI, true
	case "ptotal":
		return res.TotalP, true
	}
	if len(id) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil || n < 1 || n > len(res.Rows) {
		return 0, false
	}
	row := res.Rows[n-1]
	switch id[0] {
	case 'v':
		return row.V, true
	case 'i':
		return row.I, true
	}
	return 0, false
}
