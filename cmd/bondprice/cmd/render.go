package cmd

import (
	"fmt"
	"io"

	"github.com/rustyeddy/bondprice/editor"
	"github.com/rustyeddy/bondprice/session"
	"github.com/shopspring/decimal"
)

const displayPlaces = 6

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return decimal.NewFromFloat(*v).StringFixed(displayPlaces)
}

func renderView(w io.Writer, v session.View) {
	rows := []struct {
		field editor.Field
		value string
	}{
		{editor.FieldCleanPrice, formatValue(v.CleanPrice)},
		{editor.FieldZSpread, formatValue(v.ZSpread)},
		{editor.FieldASM, formatValue(v.ASM)},
	}

	for _, r := range rows {
		line := fmt.Sprintf("  %-10s %14s", r.field, r.value)
		if msg, ok := v.Errors[r.field]; ok {
			line += "  ! " + msg
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  %-10s %14s\n", "Price", v.Price)

	status := "valid"
	if !v.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(w, "  [%s]\n", status)
}
