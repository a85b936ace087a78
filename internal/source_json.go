package internal

import (
	"fmt"
	"os"
)

// LoadJSONFile reads a JSON ledger file and imports it. See ImportJSON for
// the payload shape.
func LoadJSONFile(l *Ledger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	return l.ImportJSON(data)
}
