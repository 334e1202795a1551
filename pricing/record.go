package pricing

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used for the settlement date token.
const DateLayout = "2006-01-02"

// PriceRecord is the market value of a bond as typed by an operator: a clean
// price, optionally quoted to a workout date and/or for a specific
// settlement date.
//
// The canonical text form is either the bare clean price ("101.25") or the
// positional triple "clean,workout,settlement" ("101.25,true,2024-01-01").
// Decoding is tolerant: unparsable tokens are coerced to zero values rather
// than reported. Callers that need strict validation must check the input
// themselves.
type PriceRecord struct {
	CleanPrice     *float64
	Workout        *bool
	SettlementDate *time.Time
}

// ParsePriceRecord decodes text into a fresh record.
func ParsePriceRecord(text string) PriceRecord {
	var r PriceRecord
	r.Decode(text)
	return r
}

// Encode returns the canonical text form. An unset clean price encodes as
// an empty token.
func (r PriceRecord) Encode() string {
	if r.Workout == nil && r.SettlementDate == nil {
		return formatFloat(r.CleanPrice)
	}

	workout := ""
	if r.Workout != nil {
		workout = strconv.FormatBool(*r.Workout)
	}
	settlement := ""
	if r.SettlementDate != nil {
		settlement = r.SettlementDate.Format(DateLayout)
	}
	return formatFloat(r.CleanPrice) + "," + workout + "," + settlement
}

// Decode applies text to r in place. Empty text is a no-op. Missing tokens
// leave the matching field untouched; present tokens that do not parse,
// including empty ones, are stored as 0, false and the zero time.
func (r *PriceRecord) Decode(text string) {
	if text == "" {
		return
	}

	items := strings.Split(text, ",")
	if tok, ok := token(items, 0); ok {
		v, _ := strconv.ParseFloat(tok, 64)
		r.CleanPrice = &v
	}
	if tok, ok := token(items, 1); ok {
		b, _ := strconv.ParseBool(tok)
		r.Workout = &b
	}
	if tok, ok := token(items, 2); ok {
		d := parseDate(tok)
		r.SettlementDate = &d
	}
}

// String implements fmt.Stringer.
func (r PriceRecord) String() string {
	return r.Encode()
}

// MarshalText implements encoding.TextMarshaler.
func (r PriceRecord) MarshalText() ([]byte, error) {
	return []byte(r.Encode()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (r *PriceRecord) UnmarshalText(b []byte) error {
	r.Decode(string(b))
	return nil
}

// Clone returns a deep copy so callers can't mutate the controller's state.
func (r PriceRecord) Clone() PriceRecord {
	out := PriceRecord{}
	if r.CleanPrice != nil {
		v := *r.CleanPrice
		out.CleanPrice = &v
	}
	if r.Workout != nil {
		v := *r.Workout
		out.Workout = &v
	}
	if r.SettlementDate != nil {
		v := *r.SettlementDate
		out.SettlementDate = &v
	}
	return out
}

func token(items []string, i int) (string, bool) {
	if i >= len(items) {
		return "", false
	}
	return strings.TrimSpace(items[i]), true
}

func parseDate(s string) time.Time {
	for _, layout := range []string{DateLayout, time.RFC3339, "01/02/2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d
		}
	}
	return time.Time{}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Date returns a pointer to the UTC midnight of the given day.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
