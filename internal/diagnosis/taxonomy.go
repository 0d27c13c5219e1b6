package diagnosis

// Misconception is a known mistake pattern in circuit analysis.
type Misconception struct {
	ID          string
	Label       string
	Description string
	Hint        string
}

// registry is the package-level misconception registry, keyed by ID.
var registry map[string]*Misconception

func init() {
	registry = make(map[string]*Misconception, len(seedMisconceptions))
	for i := range seedMisconceptions {
		m := &seedMisconceptions[i]
		registry[m.ID] = m
	}
}

// GetMisconception returns a misconception by ID, or nil if not found.
func GetMisconception(id string) *Misconception {
	return registry[id]
}

// AllMisconceptions returns every misconception in seed order.
func AllMisconceptions() []*Misconception {
	result := make([]*Misconception, len(seedMisconceptions))
	for i := range seedMisconceptions {
		result[i] = &seedMisconceptions[i]
	}
	return result
}
