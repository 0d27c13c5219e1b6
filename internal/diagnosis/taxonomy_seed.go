package diagnosis

// Misconception IDs.
const (
	IgnoredFault = "ignored-fault"
	TopologySwap = "topology-swap"
	UnitScale    = "unit-scale"
	SignFlip     = "sign-flip"
	Reciprocal   = "reciprocal"
)

var seedMisconceptions = []Misconception{
	{
		ID:          IgnoredFault,
		Label:       "Fault ignored",
		Description: "Solves the circuit as if every load were healthy",
		Hint:        "Your answer fits the circuit without its faults. Apply each fault to its load's resistance first.",
	},
	{
		ID:          TopologySwap,
		Label:       "Series and parallel swapped",
		Description: "Uses series rules on a parallel circuit or the reverse",
		Hint:        "That's the answer for the other wiring. Series loads share one current; parallel loads share the full voltage.",
	},
	{
		ID:          UnitScale,
		Label:       "Unit prefix slip",
		Description: "Answers in milli- or kilo- units instead of base units",
		Hint:        "Off by a factor of 1000. Answer in base units: ohms, amps, volts or watts.",
	},
	{
		ID:          SignFlip,
		Label:       "Sign flipped",
		Description: "Gets the size right but the sign wrong",
		Hint:        "Right size, wrong sign. These quantities are never negative here.",
	},
	{
		ID:          Reciprocal,
		Label:       "Reciprocal not taken",
		Description: "Stops at 1/R for parallel resistance or inverts a ratio",
		Hint:        "Your answer is the reciprocal of the correct one. For parallel resistance, finish with Rtotal = 1 / (sum of 1/R).",
	},
}
