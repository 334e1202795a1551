package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/rustyeddy/bondprice/market"
	"github.com/rustyeddy/bondprice/pricing"
	"github.com/stretchr/testify/require"
)

var valDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

type fakeCurves struct {
	curve  market.Curve
	called int
}

func (f *fakeCurves) ValuationDate() time.Time { return f.curve.ValuationDate }

func (f *fakeCurves) Curve() market.Curve {
	f.called++
	return f.curve
}

type fakeBuilder struct {
	err       error
	called    int
	lastCurve market.Curve
}

func (f *fakeBuilder) Build(bond market.BondStatic, curve market.Curve) (market.Instrument, error) {
	f.called++
	f.lastCurve = curve
	if f.err != nil {
		return market.Instrument{}, f.err
	}
	return market.Instrument{Bond: bond, ValuationDate: curve.ValuationDate, Years: 5}, nil
}

// fakeEngine maps price -> asm as 100-price and price -> zspread as
// (100-price)/100, and the inverse for zspread -> price.
type fakeEngine struct {
	asmErr, zErr, priceErr error
	panicOnASM             bool

	asmCalls, zCalls, priceCalls int
	lastASMPrice                 *float64
	lastASMAsOf                  *time.Time
	lastZText                    string
}

func (f *fakeEngine) PriceToASM(_ market.Curve, _ market.Instrument, asOf *time.Time, cleanPrice *float64) (float64, error) {
	f.asmCalls++
	f.lastASMPrice = cleanPrice
	f.lastASMAsOf = asOf
	if f.panicOnASM {
		panic("asm library crashed")
	}
	if f.asmErr != nil {
		return 0, f.asmErr
	}
	if cleanPrice == nil {
		return 0, errors.New("no clean price")
	}
	return 100 - *cleanPrice, nil
}

func (f *fakeEngine) PriceToZSpread(_ market.Curve, _ market.Instrument, _ *time.Time, price string) (float64, error) {
	f.zCalls++
	f.lastZText = price
	if f.zErr != nil {
		return 0, f.zErr
	}
	rec := pricing.ParsePriceRecord(price)
	return (100 - *rec.CleanPrice) / 100, nil
}

func (f *fakeEngine) ZSpreadToPrice(_ market.Curve, _ market.Instrument, zSpread float64, _ *time.Time) (float64, error) {
	f.priceCalls++
	if f.priceErr != nil {
		return 0, f.priceErr
	}
	return 100 - zSpread*100, nil
}

func (f *fakeEngine) calls() int { return f.asmCalls + f.zCalls + f.priceCalls }

type fixture struct {
	c       *Controller
	gate    *Gate
	curves  *fakeCurves
	builder *fakeBuilder
	engine  *fakeEngine
	changed []Field
}

func newFixture(t *testing.T, initial string) *fixture {
	t.Helper()

	fx := &fixture{
		curves: &fakeCurves{curve: market.Curve{
			ValuationDate: valDate,
			Points:        []market.CurvePoint{{Tenor: 1, Rate: 0.03}},
		}},
		builder: &fakeBuilder{},
		engine:  &fakeEngine{},
	}

	bond := market.BondStatic{ID: "XS0000000001", Coupon: 0.04, Maturity: valDate.AddDate(5, 0, 0)}
	c, err := New(bond, Deps{Curves: fx.curves, Builder: fx.builder, Engine: fx.engine}, initial)
	require.NoError(t, err)

	fx.c = c
	fx.gate = NewGate(c)
	c.Subscribe(func(f Field) { fx.changed = append(fx.changed, f) })
	return fx
}

func str(s string) *string { return &s }
