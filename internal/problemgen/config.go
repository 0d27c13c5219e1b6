package problemgen

// Config controls the behavior of the Builder.
type Config struct {
	// Validators run in order on every built question; the first failure
	// stops the pipeline.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
		},
	}
}
