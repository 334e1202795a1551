// Package valuation holds the reference pricing engine used by the CLI and
// the end-to-end tests. It prices an annual-coupon bullet bond in closed form
// off an interpolated zero curve; it is not meant to replace a desk library.
package valuation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/bondprice/market"
	"github.com/rustyeddy/bondprice/pricing"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingPrice  = errors.New("clean price is required")
	ErrNoConvergence = errors.New("z-spread solver did not converge")
)

const (
	defaultPrecision     = 6
	defaultMaxIterations = 200
	defaultTolerance     = 1e-10

	minYield = -0.99
	maxYield = 10.0
)

// Params tune the reference engine.
type Params struct {
	Precision     int32   // decimal places results are rounded to
	MaxIterations int     // bisection cap for z-spread inversion
	Tolerance     float64 // price tolerance for z-spread inversion
}

// Reference implements pricing.Engine.
type Reference struct {
	params Params
}

var _ pricing.Engine = (*Reference)(nil)

func NewReference(p Params) *Reference {
	if p.Precision <= 0 {
		p.Precision = defaultPrecision
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = defaultMaxIterations
	}
	if p.Tolerance <= 0 {
		p.Tolerance = defaultTolerance
	}
	return &Reference{params: p}
}

func (e *Reference) ZSpreadToPrice(curve market.Curve, inst market.Instrument, zSpread float64, asOf *time.Time) (float64, error) {
	years, rate, err := e.point(curve, inst, asOf)
	if err != nil {
		return 0, err
	}
	y := rate + zSpread
	if y <= minYield {
		return 0, fmt.Errorf("z-spread %.6f puts yield below %.2f", zSpread, minYield)
	}
	return e.round(price(inst.Bond.Coupon, y, years)), nil
}

func (e *Reference) PriceToZSpread(curve market.Curve, inst market.Instrument, asOf *time.Time, text string) (float64, error) {
	rec := pricing.ParsePriceRecord(text)
	if rec.CleanPrice == nil {
		return 0, ErrMissingPrice
	}
	target := *rec.CleanPrice
	if target <= 0 {
		return 0, fmt.Errorf("clean price must be positive, got %v", target)
	}

	years, rate, err := e.point(curve, inst, asOf)
	if err != nil {
		return 0, err
	}

	// price is strictly decreasing in yield
	lo, hi := minYield+1e-9, maxYield
	if target > price(inst.Bond.Coupon, lo, years) || target < price(inst.Bond.Coupon, hi, years) {
		return 0, fmt.Errorf("clean price %v outside solvable range", target)
	}
	for i := 0; i < e.params.MaxIterations; i++ {
		mid := (lo + hi) / 2
		p := price(inst.Bond.Coupon, mid, years)
		if math.Abs(p-target) <= e.params.Tolerance {
			return e.round(mid - rate), nil
		}
		if p > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, ErrNoConvergence
}

// PriceToASM returns the par/par asset-swap margin: the gap between the
// bond's value on the swap curve and its market price, spread over the
// swap annuity.
func (e *Reference) PriceToASM(curve market.Curve, inst market.Instrument, asOf *time.Time, cleanPrice *float64) (float64, error) {
	if cleanPrice == nil {
		return 0, ErrMissingPrice
	}
	years, rate, err := e.point(curve, inst, asOf)
	if err != nil {
		return 0, err
	}
	a := annuity(rate, years)
	if a <= 0 {
		return 0, fmt.Errorf("degenerate swap annuity for %.4f years", years)
	}
	fair := price(inst.Bond.Coupon, rate, years)
	return e.round((fair - *cleanPrice) / (100 * a)), nil
}

func (e *Reference) point(curve market.Curve, inst market.Instrument, asOf *time.Time) (years, rate float64, err error) {
	years = inst.Years
	if asOf != nil {
		years = market.YearFraction(*asOf, inst.Bond.Maturity)
	}
	if years <= 0 {
		return 0, 0, market.ErrMatured
	}
	rate, err = curve.Rate(years)
	if err != nil {
		return 0, 0, err
	}
	return years, rate, nil
}

func (e *Reference) round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(e.params.Precision).Float64()
	return f
}

// price per 100 face for an annual coupon c at yield y over t years.
func price(c, y, t float64) float64 {
	return 100 * (c*annuity(y, t) + math.Pow(1+y, -t))
}

func annuity(y, t float64) float64 {
	if math.Abs(y) < 1e-12 {
		return t
	}
	return (1 - math.Pow(1+y, -t)) / y
}
