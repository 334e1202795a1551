package editor

// CleanPriceNotSet is reported for the clean price while it is unset.
const CleanPriceNotSet = "Clean Price has not been set"

// Gate derives validity from the controller's per-field error state. It
// holds no state of its own, so it always reflects the latest edit.
type Gate struct {
	c *Controller
}

func NewGate(c *Controller) *Gate {
	return &Gate{c: c}
}

// ErrorFor returns the validation message for f, or "" when f is valid.
func (g *Gate) ErrorFor(f Field) string {
	return g.validator(f)()
}

// ErrorForName is ErrorFor keyed by display name. Names that are not
// tracked fields are never in error.
func (g *Gate) ErrorForName(name string) string {
	f, ok := ParseField(name)
	if !ok {
		return ""
	}
	return g.ErrorFor(f)
}

// IsValid reports whether every tracked field validates.
func (g *Gate) IsValid() bool {
	for _, f := range Fields() {
		if g.ErrorFor(f) != "" {
			return false
		}
	}
	return true
}

// Errors returns the fields currently in error.
func (g *Gate) Errors() map[Field]string {
	out := make(map[Field]string)
	for _, f := range Fields() {
		if msg := g.ErrorFor(f); msg != "" {
			out[f] = msg
		}
	}
	return out
}

func (g *Gate) validator(f Field) func() string {
	switch f {
	case FieldCleanPrice:
		return g.validateCleanPrice
	case FieldASM:
		return g.slot(FieldASM)
	case FieldZSpread:
		return g.slot(FieldZSpread)
	}
	return func() string { return "" }
}

func (g *Gate) validateCleanPrice() string {
	if g.c.record.CleanPrice == nil {
		return CleanPriceNotSet
	}
	return g.c.errs[FieldCleanPrice]
}

func (g *Gate) slot(f Field) func() string {
	return func() string { return g.c.errs[f] }
}
