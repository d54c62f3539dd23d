// Package calculator implements the ROI estimate engine and its input
// validation. The same Compute function backs both the optimistic live
// preview and the authoritative server-side recomputation, so the two can
// never drift apart.
package calculator

import "github.com/tasklift/backend/internal/model"

const weeksPerYear = 52

// Compute derives the annual cost and savings metrics from the raw inputs.
// It is total and deterministic: any numeric input, including zeroes from a
// partially filled form, yields a numeric result and it never fails.
func Compute(in model.CalculatorInputs) model.CalculatorResults {
	runs := float64(in.FrequencyValue) * weeksPerYear
	if in.FrequencyType == FrequencyDay {
		runs = float64(in.FrequencyValue) * float64(in.WorkingDays) * weeksPerYear
	}

	hours := float64(in.TeamSize) * float64(in.TimePerTask) * runs / 60
	cost := hours * in.HourlyCost
	potential := float64(in.AutomationPotential) / 100

	return model.CalculatorResults{
		AnnualRuns:            runs,
		AnnualHours:           hours,
		AnnualCost:            cost,
		PotentialSavingsHours: hours * potential,
		PotentialSavingsCost:  cost * potential,
	}
}

// AnnualMinutes returns the yearly minutes spent on the task. The report
// mail shows it as an intermediate step of the derivation.
func AnnualMinutes(in model.CalculatorInputs, res model.CalculatorResults) float64 {
	return float64(in.TeamSize) * float64(in.TimePerTask) * res.AnnualRuns
}
