//go:build blackbox

package blackbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// writeConfig writes a config for a 5% bond on a flat 5% curve, journaled
// to the given backend inside dir.
func writeConfig(t *testing.T, dir, journalType string) string {
	t.Helper()

	path := filepath.Join(dir, "bond.yaml")
	body := `initial_price: "100"
bond:
  id: PAR5
  currency: EUR
  coupon: 0.05
  maturity: "2029-01-01"
curve:
  valuation_date: "2024-01-01"
  points:
    - {tenor_years: 1, rate: 0.05}
    - {tenor_years: 10, rate: 0.05}
journal:
  type: ` + journalType + `
  db_path: ` + filepath.Join(dir, "audit.sqlite") + `
  dir: ` + filepath.Join(dir, "wal") + `
logging:
  level: error
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
