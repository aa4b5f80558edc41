package schema

import (
	"encoding/json"
	"math"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	errNotString  = validation.NewError("schema_not_string", "must be a string")
	errNotBool    = validation.NewError("schema_not_bool", "must be a boolean")
	errNotInteger = validation.NewError("schema_not_integer", "must be an integer")
	errNotArray   = validation.NewError("schema_not_array", "must be an array")
	errNotObject  = validation.NewError("schema_not_object", "must be an object")
	errNull       = validation.NewError("schema_null", "must not be null")
)

// Type rules. None of them coerce: "1" is not an integer and 0 is not a boolean.
var (
	isString = validation.By(func(value interface{}) error {
		if _, ok := value.(string); !ok {
			return errNotString
		}
		return nil
	})

	isBool = validation.By(func(value interface{}) error {
		if _, ok := value.(bool); !ok {
			return errNotBool
		}
		return nil
	})

	isInteger = validation.By(func(value interface{}) error {
		if _, ok := asInteger(value); !ok {
			return errNotInteger
		}
		return nil
	})

	isArray = validation.By(func(value interface{}) error {
		if _, ok := value.([]interface{}); !ok {
			return errNotArray
		}
		return nil
	})

	isObject = validation.By(func(value interface{}) error {
		if _, ok := value.(map[string]interface{}); !ok {
			return errNotObject
		}
		return nil
	})

	notNull = validation.NotNil.ErrorObject(errNull)
)

// maxExactInt bounds the float64 values that still map onto an int64.
const maxExactInt = 1 << 63

// asInteger reports the integer a decoded number stands for. The rule is the
// same for json.Number (UseNumber decoding) and float64 (plain decoding): the
// value must have no fractional part, so 1.0 and 1e3 are integers and 1.5 is
// not.
func asInteger(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatInteger(f)
	case float64:
		return floatInteger(v)
	case float32:
		return floatInteger(float64(v))
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() < maxExactInt {
			return int64(rv.Uint()), true
		}
	}
	return 0, false
}

func floatInteger(f float64) (int64, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || f >= maxExactInt || f < -maxExactInt {
		return 0, false
	}
	return int64(f), true
}
