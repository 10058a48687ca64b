package webcash

import (
	"fmt"
	"strconv"
	"strings"
)

// minorUnitsPerWhole is the fixed-point scale of the original webcash
// decimal rendering: 8 fractional digits, e.g. 3000000 renders as "0.03".
const minorUnitsPerWhole = 100000000

// Amount is a signed 64-bit quantity of webcash, in minor units.
type Amount int64

// Add returns lhs+rhs, failing if the sum overflows int64. Callers must
// refuse the operation on error rather than silently wrap (spec.md §4.A).
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a + b
	// Overflow iff the operands share a sign but the result doesn't.
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum > 0) {
		return 0, fmt.Errorf("webcash: amount overflow adding %d and %d", a, b)
	}
	return sum, nil
}

// Sign returns -1, 0, or 1.
func (a Amount) Sign() int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}

// String renders the amount as a fixed 8-fractional-digit decimal, with
// trailing zero fractional digits (and the point itself) trimmed, the way
// the original wallet's to_string(const Amount&) renders it — this is the
// form that appears inside an eN:type:HEX wire token, in recovery-log
// lines, and in CLI balance output. e.g. Amount(3000000).String() == "0.03".
func (a Amount) String() string {
	neg := a < 0
	v := int64(a)
	if neg {
		v = -v
	}
	whole := v / minorUnitsPerWhole
	frac := v % minorUnitsPerWhole

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(whole, 10))
	if frac != 0 {
		fracStr := strconv.FormatInt(frac, 10)
		fracStr = strings.Repeat("0", 8-len(fracStr)) + fracStr
		fracStr = strings.TrimRight(fracStr, "0")
		b.WriteByte('.')
		b.WriteString(fracStr)
	}
	return b.String()
}

// ParseDecimalAmount is the inverse of String: a fixed-precision decimal
// with no more than 8 digits past the decimal point, and an optional
// leading minus sign.
func ParseDecimalAmount(s string) (Amount, error) {
	if s == "" {
		return 0, fmt.Errorf("webcash: empty amount")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if s == "" {
			return 0, fmt.Errorf("webcash: bare minus sign is not a valid amount")
		}
	}

	whole, frac, hasFrac := s, "", false
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac, hasFrac = s[:idx], s[idx+1:], true
	}
	if whole == "" || !isAllDigits(whole) {
		return 0, fmt.Errorf("webcash: invalid integer part %q", whole)
	}
	if len(whole) > 1 && whole[0] == '0' {
		return 0, fmt.Errorf("webcash: leading zero not allowed in %q", whole)
	}
	if hasFrac {
		if frac == "" || len(frac) > 8 || !isAllDigits(frac) {
			return 0, fmt.Errorf("webcash: invalid fractional part %q", frac)
		}
	}
	frac = frac + strings.Repeat("0", 8-len(frac))

	wholeVal, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("webcash: amount overflow")
	}
	fracVal, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("webcash: amount overflow")
	}

	total, err := mulAdd(wholeVal, minorUnitsPerWhole, fracVal)
	if err != nil {
		return 0, err
	}
	if neg {
		total = -total
	}
	return Amount(total), nil
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func mulAdd(whole, scale, frac int64) (int64, error) {
	const maxInt64 = 1<<63 - 1
	if whole > maxInt64/scale {
		return 0, fmt.Errorf("webcash: amount overflow")
	}
	product := whole * scale
	sum := product + frac
	if sum < product {
		return 0, fmt.Errorf("webcash: amount overflow")
	}
	return sum, nil
}
