package calculator

import (
	"net/url"
	"strconv"

	"github.com/tasklift/backend/internal/model"
)

// Short query keys for shareable calculator links.
const (
	keyTeamSize            = "ts"
	keyTimePerTask         = "tm"
	keyFrequencyType       = "ft"
	keyFrequencyValue      = "fv"
	keyWorkingDays         = "wd"
	keyHourlyCost          = "hc"
	keyAutomationPotential = "ap"
)

// EncodeShare encodes the current calculator state into query parameters so
// a scenario can be bookmarked or shared.
func EncodeShare(in model.CalculatorInputs) url.Values {
	q := url.Values{}
	q.Set(keyTeamSize, strconv.Itoa(in.TeamSize))
	q.Set(keyTimePerTask, strconv.Itoa(in.TimePerTask))
	q.Set(keyFrequencyType, in.FrequencyType)
	q.Set(keyFrequencyValue, strconv.Itoa(in.FrequencyValue))
	q.Set(keyWorkingDays, strconv.Itoa(in.WorkingDays))
	q.Set(keyHourlyCost, strconv.FormatFloat(in.HourlyCost, 'f', -1, 64))
	q.Set(keyAutomationPotential, strconv.Itoa(in.AutomationPotential))
	return q
}

// DecodeShare applies the same soft validation as an initial page load:
// malformed or missing fields come back as empty (zero), except the
// automation potential, which falls back to the slider default and is
// clamped into the shared-link band.
func DecodeShare(q url.Values) model.CalculatorInputs {
	in := model.CalculatorInputs{
		TeamSize:       softInt(q.Get(keyTeamSize)),
		TimePerTask:    softInt(q.Get(keyTimePerTask)),
		FrequencyValue: softInt(q.Get(keyFrequencyValue)),
		WorkingDays:    softInt(q.Get(keyWorkingDays)),
		HourlyCost:     softFloat(q.Get(keyHourlyCost)),
	}

	if ft := q.Get(keyFrequencyType); ft == FrequencyDay || ft == FrequencyWeek {
		in.FrequencyType = ft
	}

	ap := DefaultSharedPotential
	if n, err := strconv.Atoi(q.Get(keyAutomationPotential)); err == nil {
		ap = n
	}
	if ap < MinSharedPotential {
		ap = MinSharedPotential
	}
	if ap > MaxSharedPotential {
		ap = MaxSharedPotential
	}
	in.AutomationPotential = ap

	return in
}

func softInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func softFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
