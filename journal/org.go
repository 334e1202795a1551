package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatEditOrg renders an edit as an Org-mode block with the structured
// facts in a PROPERTIES drawer.
func FormatEditOrg(e EditRecord) string {
	status := "VALID"
	if !e.Valid {
		status = "INVALID"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("** %s %s = %s (%s)\n", status, e.Field, e.Input, shortID(e.EditID)))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":EDIT_ID: %s\n", e.EditID))
	b.WriteString(fmt.Sprintf(":SESSION_ID: %s\n", e.SessionID))
	b.WriteString(fmt.Sprintf(":BOND: %s\n", e.BondID))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", e.Time.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":PRICE: %s\n", e.Price))
	b.WriteString(fmt.Sprintf(":ZSPREAD: %s\n", f(e.ZSpread)))
	b.WriteString(fmt.Sprintf(":ASM: %s\n", f(e.ASM)))
	if e.Errors != "" {
		b.WriteString(fmt.Sprintf(":ERRORS: %s\n", e.Errors))
	}
	b.WriteString(":END:\n")

	return b.String()
}

// FormatEditsOrg renders multiple edits separated by blank lines.
func FormatEditsOrg(edits []EditRecord) string {
	var b strings.Builder
	for i, e := range edits {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatEditOrg(e))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
