package client

import (
	"net/url"
	"testing"

	"github.com/tasklift/backend/internal/calculator"
)

func TestDigitsOnly(t *testing.T) {
	cases := []struct{ in, want string }{
		{"123", "123"},
		{"12a3b", "123"},
		{"-5", "5"},
		{"1.5", "15"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := DigitsOnly(c.in); got != c.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestFormState_SoftCoercion verifies empty and malformed fields coerce to
// zero instead of failing.
func TestFormState_SoftCoercion(t *testing.T) {
	f := FormState{
		TeamSize:            "",
		TimePerTask:         "abc",
		FrequencyType:       "week",
		FrequencyValue:      "5",
		WorkingDays:         "5",
		HourlyCost:          "-10",
		AutomationPotential: 40,
	}

	in := f.Inputs()
	if in.TeamSize != 0 || in.TimePerTask != 0 || in.HourlyCost != 0 {
		t.Errorf("expected zero-fill for bad fields, got %+v", in)
	}
	if in.FrequencyValue != 5 || in.AutomationPotential != 40 {
		t.Errorf("expected valid fields kept, got %+v", in)
	}
}

// TestFormState_Preview verifies the live estimate uses the same engine as
// the server.
func TestFormState_Preview(t *testing.T) {
	f := FormState{
		TeamSize:            "4",
		TimePerTask:         "30",
		FrequencyType:       "week",
		FrequencyValue:      "5",
		WorkingDays:         "5",
		HourlyCost:          "50",
		AutomationPotential: 50,
	}

	res := f.Preview()
	if res.AnnualRuns != 260 {
		t.Errorf("expected 260 annual runs, got %v", res.AnnualRuns)
	}
	if res.AnnualHours != 520 {
		t.Errorf("expected 520 annual hours, got %v", res.AnnualHours)
	}
	if res.AnnualCost != 26000 {
		t.Errorf("expected 26000 annual cost, got %v", res.AnnualCost)
	}
	if res.PotentialSavingsCost != 13000 {
		t.Errorf("expected 13000 potential savings, got %v", res.PotentialSavingsCost)
	}

	if got := calculator.Compute(f.Inputs()); got != res {
		t.Errorf("preview diverged from engine: %+v vs %+v", res, got)
	}
}

func TestFormState_PreviewPartialFormIsZero(t *testing.T) {
	res := FormState{FrequencyType: "week"}.Preview()
	if res.AnnualCost != 0 || res.PotentialSavingsCost != 0 {
		t.Errorf("expected zero estimate for empty form, got %+v", res)
	}
}

// TestFormState_Hints verifies the on-blur hint list reports the same
// fields the server would reject.
func TestFormState_Hints(t *testing.T) {
	f := FormState{
		TeamSize:            "",
		TimePerTask:         "30",
		FrequencyType:       "week",
		FrequencyValue:      "5",
		WorkingDays:         "5",
		HourlyCost:          "50",
		AutomationPotential: 50,
	}

	hints := f.Hints()
	if len(hints) != 1 || hints[0].Field != "teamSize" {
		t.Errorf("expected one teamSize hint, got %v", hints)
	}

	f.TeamSize = "4"
	if hints := f.Hints(); len(hints) != 0 {
		t.Errorf("expected no hints for valid form, got %v", hints)
	}
}

func TestFormState_ShareRoundTrip(t *testing.T) {
	f := FormState{
		TeamSize:            "8",
		TimePerTask:         "20",
		FrequencyType:       "day",
		FrequencyValue:      "3",
		WorkingDays:         "5",
		HourlyCost:          "45.5",
		AutomationPotential: 60,
	}

	got := FromShareQuery(f.ShareQuery())
	if got != f {
		t.Errorf("share round trip changed state: %+v vs %+v", got, f)
	}
}

// TestFromShareQuery_Clamping verifies tampered link parameters load with
// the potential clamped and malformed numbers zeroed.
func TestFromShareQuery_Clamping(t *testing.T) {
	q := url.Values{}
	q.Set("ts", "abc")
	q.Set("ap", "95")

	f := FromShareQuery(q)
	if f.TeamSize != "" {
		t.Errorf("expected malformed team size to load empty, got %q", f.TeamSize)
	}
	if f.AutomationPotential != calculator.MaxSharedPotential {
		t.Errorf("expected potential clamped to %d, got %d",
			calculator.MaxSharedPotential, f.AutomationPotential)
	}
}

func TestFromShareQuery_DefaultPotential(t *testing.T) {
	f := FromShareQuery(url.Values{})
	if f.AutomationPotential != calculator.DefaultSharedPotential {
		t.Errorf("expected default potential %d, got %d",
			calculator.DefaultSharedPotential, f.AutomationPotential)
	}
}
