// README: Common money value object used across modules.
package types

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultCurrency is the currency assumed when a provider omits one.
const DefaultCurrency = "PLN"

// Money is a decimal amount in a given currency. Provider prices are
// decimal (e.g. 149.99 PLN), so the amount is kept as a float rather
// than integer minor units.
type Money struct {
	Amount   float64
	Currency string
}

// Format renders the amount the way shop listings display prices:
// whole amounts without decimals, fractional ones with two.
func (m Money) Format() string {
	cur := m.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	if m.Amount == math.Trunc(m.Amount) {
		return fmt.Sprintf("%d %s", int64(m.Amount), cur)
	}
	return strconv.FormatFloat(m.Amount, 'f', 2, 64) + " " + cur
}
