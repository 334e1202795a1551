package editor

// Field identifies one of the three tracked representations of a bond's
// market value.
type Field int

const (
	FieldCleanPrice Field = iota
	FieldASM
	FieldZSpread
)

var fieldNames = [...]string{
	FieldCleanPrice: "CleanPrice",
	FieldASM:        "ASM",
	FieldZSpread:    "ZSpread",
}

// Fields returns the tracked fields in validation order.
func Fields() []Field {
	return []Field{FieldCleanPrice, FieldASM, FieldZSpread}
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "Unknown"
	}
	return fieldNames[f]
}

// ParseField maps a display name back to a Field.
func ParseField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return Field(f), true
		}
	}
	return 0, false
}
