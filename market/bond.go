package market

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidBond = errors.New("invalid bond static data")
	ErrMatured     = errors.New("bond has matured")
)

// BondStatic is the static reference data of a fixed-rate bullet bond.
type BondStatic struct {
	ID          string    `json:"id" yaml:"id"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Currency    string    `json:"currency" yaml:"currency"`
	Coupon      float64   `json:"coupon" yaml:"coupon"` // annual, decimal (0.045 == 4.5%)
	Maturity    time.Time `json:"maturity" yaml:"maturity"`
	Face        float64   `json:"face" yaml:"face"`
}

// Instrument is a priceable bond bound to a specific curve snapshot.
// Instruments are built per edit and never cached.
type Instrument struct {
	Bond          BondStatic
	ValuationDate time.Time
	Years         float64 // time to maturity from ValuationDate
}

// InstrumentBuilder turns static data plus the current curve into an
// Instrument.
type InstrumentBuilder interface {
	Build(bond BondStatic, curve Curve) (Instrument, error)
}

// Builder is the default InstrumentBuilder.
type Builder struct{}

func (Builder) Build(bond BondStatic, curve Curve) (Instrument, error) {
	if bond.ID == "" {
		return Instrument{}, errors.Wrap(ErrInvalidBond, "missing id")
	}
	if bond.Coupon < 0 {
		return Instrument{}, errors.Wrapf(ErrInvalidBond, "%s: negative coupon %.6f", bond.ID, bond.Coupon)
	}
	if bond.Maturity.IsZero() {
		return Instrument{}, errors.Wrapf(ErrInvalidBond, "%s: missing maturity", bond.ID)
	}
	if len(curve.Points) == 0 {
		return Instrument{}, errors.Wrapf(ErrInvalidBond, "%s: empty curve", bond.ID)
	}
	if !bond.Maturity.After(curve.ValuationDate) {
		return Instrument{}, errors.Wrapf(ErrMatured, "%s matured %s", bond.ID, bond.Maturity.Format("2006-01-02"))
	}

	if bond.Face == 0 {
		bond.Face = 100
	}

	return Instrument{
		Bond:          bond,
		ValuationDate: curve.ValuationDate,
		Years:         curve.YearFraction(bond.Maturity),
	}, nil
}
