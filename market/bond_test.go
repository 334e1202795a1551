package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurve(t *testing.T) Curve {
	t.Helper()

	c, err := NewCurve(valDate, []CurvePoint{{Tenor: 1, Rate: 0.03}, {Tenor: 10, Rate: 0.035}})
	require.NoError(t, err)
	return c
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	good := BondStatic{ID: "XS1", Currency: "EUR", Coupon: 0.04, Maturity: valDate.AddDate(0, 0, 730)}

	tests := []struct {
		name    string
		mutate  func(b *BondStatic, c *Curve)
		wantErr error
		msg     string
	}{
		{name: "valid"},
		{name: "zero coupon is valid", mutate: func(b *BondStatic, _ *Curve) { b.Coupon = 0 }},
		{name: "missing id", mutate: func(b *BondStatic, _ *Curve) { b.ID = "" }, wantErr: ErrInvalidBond, msg: "missing id"},
		{name: "negative coupon", mutate: func(b *BondStatic, _ *Curve) { b.Coupon = -0.01 }, wantErr: ErrInvalidBond, msg: "negative coupon"},
		{name: "missing maturity", mutate: func(b *BondStatic, _ *Curve) { b.Maturity = time.Time{} }, wantErr: ErrInvalidBond, msg: "missing maturity"},
		{name: "empty curve", mutate: func(_ *BondStatic, c *Curve) { c.Points = nil }, wantErr: ErrInvalidBond, msg: "empty curve"},
		{name: "matures on valuation date", mutate: func(b *BondStatic, _ *Curve) { b.Maturity = valDate }, wantErr: ErrMatured},
		{name: "already matured", mutate: func(b *BondStatic, _ *Curve) { b.Maturity = valDate.AddDate(0, 0, -1) }, wantErr: ErrMatured},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bond, curve := good, testCurve(t)
			if tt.mutate != nil {
				tt.mutate(&bond, &curve)
			}

			inst, err := Builder{}.Build(bond, curve)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, bond.ID, inst.Bond.ID)
			assert.Equal(t, valDate, inst.ValuationDate)
			assert.InDelta(t, 2.0, inst.Years, 1e-12)
		})
	}
}

func TestBuilder_DefaultsFace(t *testing.T) {
	t.Parallel()

	bond := BondStatic{ID: "XS1", Coupon: 0.04, Maturity: valDate.AddDate(1, 0, 0)}
	inst, err := Builder{}.Build(bond, testCurve(t))
	require.NoError(t, err)
	assert.Equal(t, 100.0, inst.Bond.Face)

	bond.Face = 1000
	inst, err = Builder{}.Build(bond, testCurve(t))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, inst.Bond.Face)
}
