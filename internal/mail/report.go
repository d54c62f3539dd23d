// Package mail renders the ROI report email. Rendering is a pure formatting
// step: it only ever sees inputs that passed hard validation and results the
// server just recomputed.
package mail

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/tasklift/backend/internal/calculator"
	"github.com/tasklift/backend/internal/model"
)

// Subject builds the operator-facing subject line.
func Subject(res model.CalculatorResults) string {
	return fmt.Sprintf("ROI report request: %.0f EUR potential savings", math.Round(res.PotentialSavingsCost))
}

type reportData struct {
	Email               string
	TeamSize            int
	TimePerTask         int
	Frequency           string
	WorkingDays         int
	HourlyCost          string
	AutomationPotential int

	// Derivation rows in presentation order.
	AnnualRuns           string
	AnnualMinutes        string
	AnnualHours          string
	AnnualCost           string
	PotentialSavingsCost string

	PotentialSavingsHours string
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>New ROI report request</h2>
  <p>Reply-to: {{.Email}}</p>

  <h3>Calculator inputs</h3>
  <table cellpadding="4">
    <tr><td>Team size</td><td>{{.TeamSize}} people</td></tr>
    <tr><td>Time per task</td><td>{{.TimePerTask}} min</td></tr>
    <tr><td>Frequency</td><td>{{.Frequency}}</td></tr>
    <tr><td>Working days per week</td><td>{{.WorkingDays}}</td></tr>
    <tr><td>Hourly cost</td><td>{{.HourlyCost}} EUR</td></tr>
    <tr><td>Automation potential</td><td>{{.AutomationPotential}}%</td></tr>
  </table>

  <h3>Derivation</h3>
  <ol>
    <li>Annual runs: {{.AnnualRuns}}</li>
    <li>Annual minutes: {{.AnnualMinutes}}</li>
    <li>Annual hours: {{.AnnualHours}}</li>
    <li>Annual cost: {{.AnnualCost}} EUR</li>
    <li>Potential savings: {{.PotentialSavingsCost}} EUR</li>
  </ol>

  <p>Potential savings in hours: {{.PotentialSavingsHours}} h/year</p>
</body>
</html>
`))

// RenderReport produces the HTML body for one report. email must already be
// validated and sanitized; html/template escaping is the second line of
// defense.
func RenderReport(email string, in model.CalculatorInputs, res model.CalculatorResults) (string, error) {
	freq := fmt.Sprintf("%d times per week", in.FrequencyValue)
	if in.FrequencyType == calculator.FrequencyDay {
		freq = fmt.Sprintf("%d times per day", in.FrequencyValue)
	}

	data := reportData{
		Email:               email,
		TeamSize:            in.TeamSize,
		TimePerTask:         in.TimePerTask,
		Frequency:           freq,
		WorkingDays:         in.WorkingDays,
		HourlyCost:          trimFloat(in.HourlyCost),
		AutomationPotential: in.AutomationPotential,

		AnnualRuns:           wholeUnits(res.AnnualRuns),
		AnnualMinutes:        wholeUnits(calculator.AnnualMinutes(in, res)),
		AnnualHours:          wholeUnits(res.AnnualHours),
		AnnualCost:           wholeUnits(res.AnnualCost),
		PotentialSavingsCost: wholeUnits(res.PotentialSavingsCost),

		PotentialSavingsHours: wholeUnits(res.PotentialSavingsHours),
	}

	var b strings.Builder
	if err := reportTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// wholeUnits rounds to whole units for display, matching the calculator UI.
func wholeUnits(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
