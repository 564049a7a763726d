package salary

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestEstimate(t *testing.T) {
	tests := []struct {
		name   string
		from   *float64
		to     *float64
		want   float64
		wantOK bool
	}{
		{name: "both bounds", from: ptr(100), to: ptr(200), want: 150, wantOK: true},
		{name: "equal bounds", from: ptr(120000), to: ptr(120000), want: 120000, wantOK: true},
		{name: "only from", from: ptr(150), want: 180, wantOK: true},
		{name: "only to", to: ptr(100), want: 80, wantOK: true},
		{name: "neither", wantOK: false},
		{name: "zero from", from: ptr(0), want: 0, wantOK: true},
		{name: "zero to with from", from: ptr(0), to: ptr(0), want: 0, wantOK: true},
		{name: "negative bounds", from: ptr(-100), to: ptr(-300), want: -200, wantOK: true},
		{name: "negative only to", to: ptr(-50), want: -40, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Estimate(tt.from, tt.to)
			if ok != tt.wantOK {
				t.Fatalf("Estimate() ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Estimate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateDoesNotMutateInputs(t *testing.T) {
	from, to := ptr(10), ptr(20)
	_, _ = Estimate(from, to)
	if *from != 10 || *to != 20 {
		t.Errorf("inputs mutated: from=%v to=%v", *from, *to)
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		wantOK bool
	}{
		{name: "empty", values: nil, wantOK: false},
		{name: "single", values: []float64{42}, want: 42, wantOK: true},
		{name: "pair", values: []float64{150, 180}, want: 165, wantOK: true},
		{name: "mixed signs", values: []float64{-10, 10, 30}, want: 10, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mean(tt.values)
			if ok != tt.wantOK {
				t.Fatalf("Mean() ok = %v, want %v", ok, tt.wantOK)
			}
			if math.IsNaN(got) {
				t.Fatal("Mean() returned NaN")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Mean() = %v, want %v", got, tt.want)
			}
		})
	}
}
