package market

import (
	"fmt"
	"sort"
	"time"
)

const daysPerYear = 365.0

// CurvePoint is one zero rate on the curve. Tenor is in years from the
// valuation date, Rate is annually compounded and expressed as a decimal
// (0.035 == 3.5%).
type CurvePoint struct {
	Tenor float64 `json:"tenor_years" yaml:"tenor_years"`
	Rate  float64 `json:"rate" yaml:"rate"`
}

// Curve is a read-only snapshot of a zero curve.
type Curve struct {
	ValuationDate time.Time
	Points        []CurvePoint
}

// NewCurve sorts the points by tenor and rejects duplicate or negative tenors.
func NewCurve(valuationDate time.Time, points []CurvePoint) (Curve, error) {
	if len(points) == 0 {
		return Curve{}, fmt.Errorf("curve has no points")
	}

	pts := make([]CurvePoint, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Tenor < pts[j].Tenor })

	for i, p := range pts {
		if p.Tenor < 0 {
			return Curve{}, fmt.Errorf("negative tenor %.4f", p.Tenor)
		}
		if i > 0 && p.Tenor == pts[i-1].Tenor {
			return Curve{}, fmt.Errorf("duplicate tenor %.4f", p.Tenor)
		}
	}

	return Curve{ValuationDate: valuationDate, Points: pts}, nil
}

// Rate returns the zero rate at the given tenor. Rates are linearly
// interpolated between points and held flat beyond either end.
func (c Curve) Rate(years float64) (float64, error) {
	n := len(c.Points)
	if n == 0 {
		return 0, fmt.Errorf("empty curve")
	}
	if years <= c.Points[0].Tenor {
		return c.Points[0].Rate, nil
	}
	if years >= c.Points[n-1].Tenor {
		return c.Points[n-1].Rate, nil
	}

	i := sort.Search(n, func(i int) bool { return c.Points[i].Tenor >= years })
	lo, hi := c.Points[i-1], c.Points[i]
	w := (years - lo.Tenor) / (hi.Tenor - lo.Tenor)
	return lo.Rate + w*(hi.Rate-lo.Rate), nil
}

// YearFraction measures from the valuation date to t on an actual/365 basis.
func (c Curve) YearFraction(t time.Time) float64 {
	return YearFraction(c.ValuationDate, t)
}

// YearFraction returns the actual/365 year fraction between two dates.
func YearFraction(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerYear
}

// CurveProvider is the yield curve service. It is read-only from the point
// of view of the editor and is queried on every edit.
type CurveProvider interface {
	ValuationDate() time.Time
	Curve() Curve
}

// StaticCurve serves a fixed curve, typically loaded from config.
type StaticCurve struct {
	curve Curve
}

func NewStaticCurve(c Curve) *StaticCurve {
	return &StaticCurve{curve: c}
}

func (s *StaticCurve) ValuationDate() time.Time { return s.curve.ValuationDate }

func (s *StaticCurve) Curve() Curve { return s.curve }

// Set replaces the served curve. Subsequent edits pick it up since
// instruments are rebuilt on every edit.
func (s *StaticCurve) Set(c Curve) {
	s.curve = c
}
