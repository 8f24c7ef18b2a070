package engine

import (
	"strconv"

	"life-canvas/internal/core"
	"life-canvas/internal/ledger"
)

// Parameters returns the values shown on the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	st := e.Status()
	steps := strconv.Itoa(st.Steps)
	if st.Steps == ledger.Unlimited {
		steps = "unlimited"
	}
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "Game",
				Params: []core.Parameter{
					{Key: "state", Label: "State", Type: core.ParamTypeText, Value: st.State.String()},
					{Key: "score", Label: "Score", Type: core.ParamTypeText, Value: strconv.Itoa(st.Score)},
					{Key: "level", Label: "Level", Type: core.ParamTypeText, Value: strconv.Itoa(ledger.Level(st.Score))},
					{Key: "steps", Label: "Steps", Type: core.ParamTypeText, Value: steps, Description: "Toggles left before the budget is spent."},
					{Key: "generation", Label: "Generation", Type: core.ParamTypeText, Value: strconv.Itoa(st.Generation)},
					{Key: "rate", Label: "Rate", Type: core.ParamTypeText, Value: strconv.FormatFloat(st.Rate, 'f', 0, 64)},
				},
			},
			{
				Name: "Setup",
				Params: []core.Parameter{
					{Key: "mode", Label: "Mode", Type: core.ParamTypeChoice, Value: strconv.Itoa(int(st.Mode))},
					{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(st.Speed, 'f', -1, 64)},
					{Key: "cols", Label: "Columns", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Cols), Description: "Changing the size resets the grid."},
				},
			},
		},
	}
}

// ParameterControls lists the HUD-adjustable parameters.
func (e *Engine) ParameterControls() []core.ParameterControl {
	names := make([]string, 0, len(core.Modes()))
	for _, m := range core.Modes() {
		names = append(names, m.String())
	}
	cols := make([]float64, len(ColsPresets))
	for i, c := range ColsPresets {
		cols[i] = float64(c)
	}
	return []core.ParameterControl{
		{Key: "mode", Label: "Mode", Type: core.ParamTypeChoice, Choices: names},
		{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 0.5, Presets: SpeedPresets,
			Min: SpeedPresets[0], Max: SpeedPresets[len(SpeedPresets)-1], HasMin: true, HasMax: true},
		{Key: "cols", Label: "Columns", Type: core.ParamTypeInt, Step: 1, Presets: cols,
			Min: cols[0], Max: cols[len(cols)-1], HasMin: true, HasMax: true},
	}
}

// SetIntParameter implements core.IntParameterSetter.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "cols":
		if value < 1 {
			return false
		}
		e.SetCols(value)
		return true
	case "mode":
		return e.SetMode(core.Mode(value)) == nil
	}
	return false
}

// SetFloatParameter implements core.FloatParameterSetter.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if key != "speed" {
		return false
	}
	return e.SetSpeed(value) == nil
}
