package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeChoice denotes an integer index into a fixed list of labels.
	ParamTypeChoice ParamType = "choice"
	// ParamTypeText denotes read-only values shown as-is.
	ParamTypeText ParamType = "text"
)

// Parameter describes a single value exposed by the engine.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of values exposed by the engine.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type. Choice controls step through Choices by index and wrap.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step    float64
	Presets []float64
	Choices []string

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter allows HUD interactions to update floating point
// parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// NextPreset returns the preset adjacent to current in the given direction.
// When current is not a preset the nearest one in that direction is used.
func NextPreset(presets []float64, current float64, direction int) (float64, bool) {
	if len(presets) == 0 || direction == 0 {
		return current, false
	}
	if direction > 0 {
		for _, p := range presets {
			if p > current+1e-9 {
				return p, true
			}
		}
		return current, false
	}
	for i := len(presets) - 1; i >= 0; i-- {
		if presets[i] < current-1e-9 {
			return presets[i], true
		}
	}
	return current, false
}
