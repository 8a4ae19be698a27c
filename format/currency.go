// Package format turns reporting values into display strings. It only shapes
// presentation; business validation never looks at currency or locale.
package format

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency renders amount following the conventions of the locale for the
// given ISO 4217 code, e.g. (1234.5, "en-US", "USD") -> "$ 1,234.50".
// Unparseable inputs degrade to a plain "1234.50 XXX" form rather than
// failing the render.
func Currency(amount float64, locale, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}
