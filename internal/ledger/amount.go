// Package ledger implements the balance reconciliation arithmetic shared by
// every payment flow: order total minus the sum of recorded payments.
//
// Upstream data sources are inconsistent about JSON typing, so currency
// values may arrive as numbers or as numeric strings. Amount absorbs both.
// Values that fail numeric coercion contribute zero rather than propagating
// a fault; that leniency is a deliberate policy for uncontrolled input
// shapes, not a correctness guarantee.
package ledger

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Tolerance is the float comparison slack used when deciding whether a
// balance is settled. Two amounts closer than this are treated as equal.
const Tolerance = 0.01

// Amount is a currency value that tolerates number-or-string JSON encoding.
type Amount float64

// Float64 returns the amount as a plain float64.
func (a Amount) Float64() float64 {
	return float64(a)
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// Anything that fails numeric coercion becomes 0; no error is returned for
// scalar values.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*a = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// MarshalJSON always emits a plain JSON number. Responses from this service
// are consistently typed even when inputs were not.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Parse coerces an arbitrary decoded JSON value to an Amount.
// Unparseable values yield 0.
func Parse(v any) Amount {
	switch x := v.(type) {
	case float64:
		return Amount(x)
	case int:
		return Amount(x)
	case int64:
		return Amount(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return Amount(f)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return Amount(f)
	default:
		return 0
	}
}
