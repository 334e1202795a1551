// Package editor keeps the clean price, Z-spread and asset-swap margin of a
// bond in step while an operator edits one of them.
//
// Every price or spread edit rebuilds the instrument from the current curve
// and recomputes the dependent fields through the valuation engine. Each
// engine call is quarantined: a failure lands in that field's error slot
// and never aborts the edit or touches the sibling field. Only an
// instrument build failure fails the edit as a whole.
//
// A Controller is not safe for concurrent use; edits are expected to
// complete one at a time on the caller's goroutine.
package editor

import (
	"fmt"

	"github.com/rustyeddy/bondprice/market"
	"github.com/rustyeddy/bondprice/pricing"
	"go.uber.org/zap"
)

// Deps are the collaborators a Controller calls on every edit.
type Deps struct {
	Curves  market.CurveProvider
	Builder market.InstrumentBuilder
	Engine  pricing.Engine
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller owns the edited price record, the derived Z-spread and ASM,
// and one error slot per field.
type Controller struct {
	bond    market.BondStatic
	curves  market.CurveProvider
	builder market.InstrumentBuilder
	engine  pricing.Engine
	logger  *zap.Logger

	record  pricing.PriceRecord
	zSpread *float64
	asm     *float64
	errs    [len(fieldNames)]string

	subs []*subscription
}

type subscription struct {
	fn     func(Field)
	active bool
}

// New creates a controller for bond. initial is the encoded market value
// the record starts from; it may be empty.
func New(bond market.BondStatic, deps Deps, initial string, opts ...Option) (*Controller, error) {
	if deps.Curves == nil {
		return nil, fmt.Errorf("curve provider is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("valuation engine is required")
	}
	if deps.Builder == nil {
		deps.Builder = market.Builder{}
	}

	c := &Controller{
		bond:    bond,
		curves:  deps.Curves,
		builder: deps.Builder,
		engine:  deps.Engine,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.record.Decode(initial)
	return c, nil
}

// Subscribe registers fn to be called synchronously, in registration
// order, for every field an edit reports as changed. The returned func
// removes the registration.
func (c *Controller) Subscribe(fn func(Field)) (unsubscribe func()) {
	s := &subscription{fn: fn, active: true}
	c.subs = append(c.subs, s)
	return func() { s.active = false }
}

// SetCleanPrice applies an encoded price record and re-derives ASM and
// Z-spread from it. A nil or empty value, or one equal to the current
// encoded price, is ignored.
func (c *Controller) SetCleanPrice(value *string) error {
	if value == nil || *value == "" || *value == c.record.Encode() {
		return nil
	}

	curve := c.curves.Curve()
	inst, err := c.build(curve)
	if err != nil {
		return err
	}

	c.record.Decode(*value)
	c.errs[FieldCleanPrice] = ""
	price := c.record.Encode()
	clean := c.record.Clone().CleanPrice

	c.logger.Debug("clean price edit",
		zap.String("bond", c.bond.ID),
		zap.String("price", price))

	asm := pricing.Quarantine("PriceToASM", func() (float64, error) {
		return c.engine.PriceToASM(curve, inst, nil, clean)
	})
	z := pricing.Quarantine("PriceToZSpread", func() (float64, error) {
		return c.engine.PriceToZSpread(curve, inst, nil, price)
	})

	c.apply(FieldASM, &c.asm, asm, false)
	c.apply(FieldZSpread, &c.zSpread, z, false)

	c.notify(FieldCleanPrice, FieldZSpread, FieldASM)
	return nil
}

// SetZSpread stores a new Z-spread and re-derives the clean price and ASM
// from it. nil clears the spread without recomputing anything.
func (c *Controller) SetZSpread(value *float64) error {
	if equal(value, c.zSpread) {
		return nil
	}
	if value == nil {
		c.zSpread = nil
		return nil
	}

	curve := c.curves.Curve()
	inst, err := c.build(curve)
	if err != nil {
		return err
	}

	z := *value
	c.zSpread = &z
	c.errs[FieldZSpread] = ""
	c.errs[FieldASM] = ""

	c.logger.Debug("z-spread edit",
		zap.String("bond", c.bond.ID),
		zap.Float64("zspread", z))

	p := pricing.Quarantine("ZSpreadToPrice", func() (float64, error) {
		return c.engine.ZSpreadToPrice(curve, inst, z, nil)
	})
	if p.OK() {
		v := p.Value
		c.record.CleanPrice = &v
		c.errs[FieldCleanPrice] = ""
	} else {
		c.record.CleanPrice = nil
		c.errs[FieldCleanPrice] = p.Err.Error()
		c.warn(FieldCleanPrice, p.Err)
	}

	asOf := c.curves.ValuationDate()
	clean := c.record.Clone().CleanPrice
	asm := pricing.Quarantine("PriceToASM", func() (float64, error) {
		return c.engine.PriceToASM(curve, inst, &asOf, clean)
	})
	c.apply(FieldASM, &c.asm, asm, true)

	c.notify(FieldCleanPrice, FieldZSpread, FieldASM)
	return nil
}

// SetASM assigns the asset-swap margin as is. ASM never drives the other
// fields.
func (c *Controller) SetASM(value *float64) {
	c.asm = clone(value)
}

// UpdatePrice seeds the clean price from a market feed without running
// any valuation or notifying subscribers.
func (c *Controller) UpdatePrice(clean float64) {
	c.record.CleanPrice = &clean
}

// Price returns the encoded price record.
func (c *Controller) Price() string { return c.record.Encode() }

// Record returns a copy of the price record.
func (c *Controller) Record() pricing.PriceRecord { return c.record.Clone() }

func (c *Controller) CleanPrice() *float64 { return clone(c.record.CleanPrice) }

func (c *Controller) ZSpread() *float64 { return clone(c.zSpread) }

func (c *Controller) ASM() *float64 { return clone(c.asm) }

// State is a detached copy of everything a controller holds. Error fields
// carry the raw slot messages.
type State struct {
	Record          pricing.PriceRecord
	ZSpread         *float64
	ASM             *float64
	CleanPriceError string
	ZSpreadError    string
	ASMError        string
}

// Snapshot copies the current state. Mutating the result does not affect c.
func (c *Controller) Snapshot() State {
	return State{
		Record:          c.record.Clone(),
		ZSpread:         clone(c.zSpread),
		ASM:             clone(c.asm),
		CleanPriceError: c.errs[FieldCleanPrice],
		ZSpreadError:    c.errs[FieldZSpread],
		ASMError:        c.errs[FieldASM],
	}
}

// ValuationError returns the raw message recorded for f by the last failed
// computation, without the "not set" check the Gate applies.
func (c *Controller) ValuationError(f Field) string {
	if f < 0 || int(f) >= len(c.errs) {
		return ""
	}
	return c.errs[f]
}

// Bond returns the static data the controller builds instruments from.
func (c *Controller) Bond() market.BondStatic { return c.bond }

func (c *Controller) build(curve market.Curve) (market.Instrument, error) {
	inst, err := c.builder.Build(c.bond, curve)
	if err != nil {
		c.logger.Error("instrument build failed", zap.String("bond", c.bond.ID), zap.Error(err))
		return market.Instrument{}, &BuildError{BondID: c.bond.ID, Err: err}
	}
	return inst, nil
}

// apply stores a quarantined result into dst. On failure dst keeps its
// previous value unless clearOnFailure is set.
func (c *Controller) apply(f Field, dst **float64, res pricing.Result, clearOnFailure bool) {
	if res.OK() {
		v := res.Value
		*dst = &v
		c.errs[f] = ""
		return
	}
	if clearOnFailure {
		*dst = nil
	}
	c.errs[f] = res.Err.Error()
	c.warn(f, res.Err)
}

func (c *Controller) warn(f Field, err error) {
	c.logger.Warn("valuation failed",
		zap.String("bond", c.bond.ID),
		zap.String("field", f.String()),
		zap.Error(err))
}

func (c *Controller) notify(fields ...Field) {
	for _, f := range fields {
		for _, s := range c.subs {
			if s.active {
				s.fn(f)
			}
		}
	}
}

func equal(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
