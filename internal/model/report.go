package model

// CalculatorInputs are the raw, user-controlled fields of the ROI calculator.
// Zero values are legal here: the live preview computes on partially filled
// forms. The hard validation path rejects anything outside the field domains
// before these values reach the mail pipeline.
type CalculatorInputs struct {
	TeamSize            int     `json:"teamSize"`
	TimePerTask         int     `json:"timePerTask"` // minutes per occurrence
	FrequencyType       string  `json:"frequencyType"`
	FrequencyValue      int     `json:"frequencyValue"`
	WorkingDays         int     `json:"workingDays"`
	HourlyCost          float64 `json:"hourlyCost"` // EUR
	AutomationPotential int     `json:"automationPotential"`
}

// CalculatorResults are derived from CalculatorInputs. They are never
// persisted and never trusted when supplied by a caller; the server always
// recomputes them from the validated inputs.
type CalculatorResults struct {
	AnnualRuns            float64 `json:"annualRuns"`
	AnnualHours           float64 `json:"annualHours"`
	AnnualCost            float64 `json:"annualCost"`
	PotentialSavingsHours float64 `json:"potentialSavingsHours"`
	PotentialSavingsCost  float64 `json:"potentialSavingsCost"`
}
