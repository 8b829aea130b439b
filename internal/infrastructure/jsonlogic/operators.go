// Package jsonlogic holds the custom operators promotion conditions may use
// on top of standard JsonLogic.
package jsonlogic

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Victor-armando18/promo-cart/pkg/money"
)

// Round is {"round": [value, places]}; places defaults to 0. Ties round half up.
func Round(args ...interface{}) interface{} {
	if len(args) == 0 {
		return 0.0
	}
	val, _ := ToFloat64(args[0])
	places := 0.0
	if len(args) > 1 {
		places, _ = ToFloat64(args[1])
	}
	f, _ := money.Round(decimal.NewFromFloat(val), int32(places)).Float64()
	return f
}

// Groups is {"groups": [quantity, size]}: the number of complete groups of size.
func Groups(args ...interface{}) interface{} {
	if len(args) < 2 {
		return 0.0
	}
	qty, _ := ToFloat64(args[0])
	size, _ := ToFloat64(args[1])
	// Groups are whole units; a size below one unit has no complete group.
	n, d := int64(qty), int64(size)
	if d < 1 || n < 0 {
		return 0.0
	}
	return float64(n / d)
}

// ToFloat64 converts the numeric shapes a decoded JSON document can hold.
func ToFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
