package pricing

import (
	"time"

	"github.com/rustyeddy/bondprice/market"
)

// Engine converts between the three representations of a bond's market
// value. Every call works against the curve and the instrument built for
// the current edit. Implementations report failures as errors; they may
// also panic, which Quarantine turns into a ValuationError.
type Engine interface {
	// PriceToASM derives the asset-swap margin from a clean price. A nil
	// price is passed through and is expected to fail.
	PriceToASM(curve market.Curve, inst market.Instrument, asOf *time.Time, cleanPrice *float64) (float64, error)

	// PriceToZSpread derives the Z-spread from an encoded PriceRecord.
	PriceToZSpread(curve market.Curve, inst market.Instrument, asOf *time.Time, price string) (float64, error)

	// ZSpreadToPrice derives the clean price implied by a Z-spread.
	ZSpreadToPrice(curve market.Curve, inst market.Instrument, zSpread float64, asOf *time.Time) (float64, error)
}
