package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var valDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewCurve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		points  []CurvePoint
		wantErr string
		tenors  []float64
	}{
		{name: "sorts points", points: []CurvePoint{{Tenor: 5, Rate: 0.03}, {Tenor: 1, Rate: 0.02}, {Tenor: 2, Rate: 0.025}}, tenors: []float64{1, 2, 5}},
		{name: "zero tenor allowed", points: []CurvePoint{{Tenor: 0, Rate: 0.01}, {Tenor: 1, Rate: 0.02}}, tenors: []float64{0, 1}},
		{name: "no points", points: nil, wantErr: "no points"},
		{name: "negative tenor", points: []CurvePoint{{Tenor: -1, Rate: 0.02}, {Tenor: 1, Rate: 0.02}}, wantErr: "negative tenor"},
		{name: "duplicate tenor", points: []CurvePoint{{Tenor: 2, Rate: 0.02}, {Tenor: 1, Rate: 0.02}, {Tenor: 2, Rate: 0.03}}, wantErr: "duplicate tenor"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewCurve(valDate, tt.points)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valDate, c.ValuationDate)

			var got []float64
			for _, p := range c.Points {
				got = append(got, p.Tenor)
			}
			assert.Equal(t, tt.tenors, got)
		})
	}
}

func TestNewCurve_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := []CurvePoint{{Tenor: 2, Rate: 0.03}, {Tenor: 1, Rate: 0.02}}
	_, err := NewCurve(valDate, in)
	require.NoError(t, err)
	assert.Equal(t, 2.0, in[0].Tenor)
}

func TestCurve_Rate(t *testing.T) {
	t.Parallel()

	c, err := NewCurve(valDate, []CurvePoint{
		{Tenor: 1, Rate: 0.02},
		{Tenor: 2, Rate: 0.03},
		{Tenor: 5, Rate: 0.036},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		years float64
		want  float64
	}{
		{name: "before first point", years: 0.25, want: 0.02},
		{name: "on first point", years: 1, want: 0.02},
		{name: "between first and second", years: 1.5, want: 0.025},
		{name: "quarter way", years: 1.25, want: 0.0225},
		{name: "on inner point", years: 2, want: 0.03},
		{name: "between second and third", years: 3.5, want: 0.033},
		{name: "on last point", years: 5, want: 0.036},
		{name: "after last point", years: 30, want: 0.036},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.Rate(tt.years)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCurve_RateEmpty(t *testing.T) {
	t.Parallel()

	_, err := Curve{}.Rate(1)
	assert.Error(t, err)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, YearFraction(valDate, valDate.AddDate(0, 0, 365)), 1e-12)
	assert.InDelta(t, 0.5, Curve{ValuationDate: valDate}.YearFraction(valDate.Add(365*12*time.Hour)), 1e-12)
	assert.Less(t, YearFraction(valDate, valDate.AddDate(0, 0, -1)), 0.0)
}

func TestStaticCurve_Set(t *testing.T) {
	t.Parallel()

	first, err := NewCurve(valDate, []CurvePoint{{Tenor: 1, Rate: 0.02}})
	require.NoError(t, err)
	next, err := NewCurve(valDate.AddDate(0, 0, 1), []CurvePoint{{Tenor: 1, Rate: 0.04}})
	require.NoError(t, err)

	var p CurveProvider = NewStaticCurve(first)
	assert.Equal(t, valDate, p.ValuationDate())

	p.(*StaticCurve).Set(next)
	assert.Equal(t, valDate.AddDate(0, 0, 1), p.ValuationDate())
	r, err := p.Curve().Rate(1)
	require.NoError(t, err)
	assert.Equal(t, 0.04, r)
}
