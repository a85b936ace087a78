package internal

import "strings"

// GenerateReport renders the plain-text customer report:
//
//	Customers:
//	<summary line>
//	<summary line>
//
// Every summary line ends with a newline. An empty ledger yields
// "Customers:\n(none)" with no trailing newline.
func (l *Ledger) GenerateReport() string {
	var b strings.Builder
	b.WriteString("Customers:\n")

	if l.Len() == 0 {
		b.WriteString("(none)")
		return b.String()
	}

	for _, c := range l.Customers() {
		b.WriteString(c.SummaryLine())
		b.WriteString("\n")
	}
	return b.String()
}
