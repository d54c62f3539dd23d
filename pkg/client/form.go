package client

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tasklift/backend/internal/calculator"
	"github.com/tasklift/backend/internal/model"
)

// FormState holds the raw text field values as typed by the user. Soft
// validation never blocks the live preview: empty or unparsable fields
// compute as zero. Hints() is the deferred-until-blur error list; the
// server repeats the same checks in hard mode on submission.
type FormState struct {
	TeamSize            string
	TimePerTask         string
	FrequencyType       string
	FrequencyValue      string
	WorkingDays         string
	HourlyCost          string
	AutomationPotential int
}

// DigitsOnly strips everything but decimal digits, the presentation-layer
// filter applied to numeric text fields on input.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Inputs coerces the form into calculator inputs, zero-filling anything
// empty or malformed.
func (f FormState) Inputs() model.CalculatorInputs {
	return model.CalculatorInputs{
		TeamSize:            softInt(f.TeamSize),
		TimePerTask:         softInt(f.TimePerTask),
		FrequencyType:       f.FrequencyType,
		FrequencyValue:      softInt(f.FrequencyValue),
		WorkingDays:         softInt(f.WorkingDays),
		HourlyCost:          softFloat(f.HourlyCost),
		AutomationPotential: f.AutomationPotential,
	}
}

// Preview recomputes the live estimate. Same engine as the server; partial
// forms simply estimate as zero.
func (f FormState) Preview() model.CalculatorResults {
	return calculator.Compute(f.Inputs())
}

// Hints runs the shared hard validation over the current state for
// on-blur error display. The submit path does not consult this; the
// server's own validation is binding.
func (f FormState) Hints() []calculator.FieldError {
	in := f.Inputs()
	raw := map[string]any{
		"teamSize":            float64(in.TeamSize),
		"timePerTask":         float64(in.TimePerTask),
		"frequencyType":       in.FrequencyType,
		"frequencyValue":      float64(in.FrequencyValue),
		"workingDays":         float64(in.WorkingDays),
		"hourlyCost":          in.HourlyCost,
		"automationPotential": float64(in.AutomationPotential),
	}
	_, errs := calculator.ValidateInputs(raw)
	return errs
}

// ShareQuery encodes the current state for a shareable link.
func (f FormState) ShareQuery() url.Values {
	return calculator.EncodeShare(f.Inputs())
}

// FromShareQuery restores form state from shareable-link parameters,
// applying the same clamping as an initial page load.
func FromShareQuery(q url.Values) FormState {
	in := calculator.DecodeShare(q)
	return FormState{
		TeamSize:            softIntString(in.TeamSize),
		TimePerTask:         softIntString(in.TimePerTask),
		FrequencyType:       in.FrequencyType,
		FrequencyValue:      softIntString(in.FrequencyValue),
		WorkingDays:         softIntString(in.WorkingDays),
		HourlyCost:          softFloatString(in.HourlyCost),
		AutomationPotential: in.AutomationPotential,
	}
}

func softInt(s string) int {
	n, err := strconv.Atoi(DigitsOnly(s))
	if err != nil {
		return 0
	}
	return n
}

func softFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func softIntString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func softFloatString(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
