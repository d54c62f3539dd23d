package calculator

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/tasklift/backend/internal/model"
)

// Field domains shared by the server's hard validation and the client's soft
// hints. Both sides must use these exact constants; diverging bounds would
// let the preview accept a scenario the server rejects.
const (
	MinTeamSize            = 1
	MaxTeamSize            = 500
	MinTimePerTask         = 1
	MaxTimePerTask         = 240
	MinFrequencyValue      = 1
	MaxFrequencyValue      = 500
	MinWorkingDays         = 1
	MaxWorkingDays         = 7
	MinHourlyCost          = 10.0
	MaxHourlyCost          = 300.0
	MinAutomationPotential = 0
	MaxAutomationPotential = 90

	// Shared links clamp the automation slider into this narrower band.
	MinSharedPotential     = 10
	MaxSharedPotential     = 90
	DefaultSharedPotential = 40

	FrequencyDay  = "day"
	FrequencyWeek = "week"

	MaxEmailLength = 200
)

// FieldError names one offending field. Hard validation collects all of
// them instead of stopping at the first, so the caller can fix every
// problem in one round trip.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// ValidateInputs is the hard (server) validation path. It checks every field
// of the raw JSON object independently against its domain and returns the
// typed inputs together with all field errors found. The returned inputs are
// only meaningful when the error slice is empty.
func ValidateInputs(raw map[string]any) (model.CalculatorInputs, []FieldError) {
	var in model.CalculatorInputs
	var errs []FieldError

	collect := func(fe *FieldError) {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}

	var fe *FieldError
	in.TeamSize, fe = intField(raw, "teamSize", MinTeamSize, MaxTeamSize)
	collect(fe)
	in.TimePerTask, fe = intField(raw, "timePerTask", MinTimePerTask, MaxTimePerTask)
	collect(fe)
	in.FrequencyValue, fe = intField(raw, "frequencyValue", MinFrequencyValue, MaxFrequencyValue)
	collect(fe)
	in.WorkingDays, fe = intField(raw, "workingDays", MinWorkingDays, MaxWorkingDays)
	collect(fe)
	in.AutomationPotential, fe = intField(raw, "automationPotential", MinAutomationPotential, MaxAutomationPotential)
	collect(fe)
	in.HourlyCost, fe = floatField(raw, "hourlyCost", MinHourlyCost, MaxHourlyCost)
	collect(fe)
	in.FrequencyType, fe = frequencyField(raw)
	collect(fe)

	return in, errs
}

func intField(raw map[string]any, name string, min, max int) (int, *FieldError) {
	f, fe := numericValue(raw, name)
	if fe != nil {
		return 0, fe
	}
	if f != math.Trunc(f) {
		return 0, &FieldError{name, "must be a whole number"}
	}
	n := int(f)
	if n < min || n > max {
		return 0, &FieldError{name, fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return n, nil
}

func floatField(raw map[string]any, name string, min, max float64) (float64, *FieldError) {
	f, fe := numericValue(raw, name)
	if fe != nil {
		return 0, fe
	}
	if f < min || f > max {
		return 0, &FieldError{name, fmt.Sprintf("must be between %g and %g", min, max)}
	}
	return f, nil
}

func numericValue(raw map[string]any, name string) (float64, *FieldError) {
	v, ok := raw[name]
	if !ok || v == nil {
		return 0, &FieldError{name, "required"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &FieldError{name, "must be a number"}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FieldError{name, "must be a finite number"}
	}
	return f, nil
}

func frequencyField(raw map[string]any) (string, *FieldError) {
	v, ok := raw["frequencyType"]
	if !ok || v == nil {
		return "", &FieldError{"frequencyType", "required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{"frequencyType", "must be a string"}
	}
	if s != FrequencyDay && s != FrequencyWeek {
		return "", &FieldError{"frequencyType", `must be "day" or "week"`}
	}
	return s, nil
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRe = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Sanitize strips HTML tags, HTML entities and control characters from a
// user-supplied string. Every value interpolated into the outbound mail
// body passes through here first.
func Sanitize(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = htmlEntityRe.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// ValidateEmail sanitizes and validates a submitter address. The returned
// address is the sanitized form, safe to embed in the mail and to use as the
// reply-to header.
func ValidateEmail(raw string) (string, error) {
	s := Sanitize(raw)
	if s == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(s) > MaxEmailLength {
		return "", fmt.Errorf("email exceeds %d characters", MaxEmailLength)
	}
	if !emailRe.MatchString(s) {
		return "", fmt.Errorf("email address is not valid")
	}
	return s, nil
}
