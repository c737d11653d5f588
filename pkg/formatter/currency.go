package formatter

import (
	"math"
	"math/big"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes every amount, including negative ones ("$-100.50").
const CurrencySymbol = "$"

// NotANumber is rendered for NaN and infinite amounts.
const NotANumber = "NaN"

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency renders amount with en-US grouping and exactly two decimals,
// rounding half away from zero on the shortest decimal form of amount, so
// 1.005 becomes $1.01 and 10.999 becomes $11.00.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return CurrencySymbol + NotANumber
	}
	rounded := RoundHalfUp(amount, 2)
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return CurrencySymbol + currencyPrinter.Sprintf("%v", number.Decimal(rounded, number.Scale(2)))
}

// RoundHalfUp rounds x to places decimals, half away from zero, using the
// shortest decimal representation of x rather than its binary expansion.
func RoundHalfUp(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	r, ok := new(big.Rat).SetString(strconv.FormatFloat(x, 'f', -1, 64))
	if !ok {
		return x
	}
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil))
	r.Mul(r, scale)

	neg := r.Sign() < 0
	r.Abs(r)
	r.Add(r, big.NewRat(1, 2))
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if neg {
		q.Neg(q)
	}

	out, _ := new(big.Rat).SetFrac(q, scale.Num()).Float64()
	return out
}
