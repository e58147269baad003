package util

// Amount represents a quantity of the chain's base currency measured in
// its smallest unit, mirroring the CAmount convention of the reference
// implementation this cache was ported from.
type Amount int64

const (
	Coin      Amount = 100000000
	Cent      Amount = 1000000
	MaxMoney  Amount = 21000000 * Coin
	NullValue Amount = -1
)

// MoneyRange reports whether amt falls within the range of values the
// chain will ever consider valid.
func MoneyRange(amt Amount) bool {
	return amt >= 0 && amt <= MaxMoney
}
