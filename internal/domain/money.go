package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in cents. Prices are stored and summed as integers so
// totals never drift; JSON rendering uses two decimal places to match the
// wire contract (e.g. 10050 -> 100.50).
type Money int64

// ParseMoney converts a decimal string such as "50.50", "50.5" or "50" into
// cents. More than two fractional digits or a negative amount is rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrValidation)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: negative amount %q", ErrValidation, s)
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: amount %q has more than two decimal places", ErrValidation, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	return Money(w*100 + f), nil
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Half returns the amount multiplied by 0.5, rounding half a cent up.
func (m Money) Half() Money {
	if m < 0 {
		return -((-m + 1) / 2)
	}
	return (m + 1) / 2
}

// MarshalJSON emits the amount as a plain JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number (50.5) or string ("50.50").
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
