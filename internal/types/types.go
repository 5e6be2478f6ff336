// README: Common value types used across modules.
package types

// ID is an opaque record identifier.
type ID string

// Money is an amount in centavos. Negative amounts represent debt.
type Money struct {
	Amount   int64
	Currency string
}

const CurrencyPHP = "PHP"

// PHP builds a peso Money value from centavos.
func PHP(centavos int64) Money {
	return Money{Amount: centavos, Currency: CurrencyPHP}
}
