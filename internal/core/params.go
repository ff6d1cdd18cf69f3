package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeText denotes free-form labels such as a classification.
	ParamTypeText ParamType = "text"
)

// Parameter describes a single read-only value exposed by a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current values a sim exposes to the HUD.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that expose a snapshot to the HUD.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// Lookup returns the value stored under key, if any group carries it.
func (s ParameterSnapshot) Lookup(key string) (string, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p.Value, true
			}
		}
	}
	return "", false
}
