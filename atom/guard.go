package atom

import (
	"reflect"
)

// Rule is a single validation rule: a predicate over a payload,
// reported under a field name when it fails.
//
// Rules are held in a slice so the evaluation order is exactly the
// declaration order, independent of map iteration quirks.
type Rule[T any] struct {
	// Field is the name reported when the rule fails
	Field string

	// Check returns true when the payload satisfies the rule
	Check func(v T) bool
}

// Result is the outcome of running a validator over a payload.
type Result struct {
	// OK indicates the payload satisfied all rules
	OK bool

	// Field names the first rule that failed, empty on success
	Field string
}

// Validator checks a payload against a rule set.
type Validator[T any] func(v T) Result

// Validate composes a rule set into a validator. Rules are evaluated
// in declaration order and the first failing rule short-circuits the
// rest.
func Validate[T any](rules []Rule[T]) Validator[T] {
	return func(v T) Result {
		for _, rule := range rules {
			if !rule.Check(v) {
				return Result{OK: false, Field: rule.Field}
			}
		}
		return Result{OK: true}
	}
}

// Required builds a predicate that extracts a field with get and
// passes when the field is non-nil and, for strings, slices, arrays
// and maps, non-empty.
func Required[T any](get func(v T) any) func(v T) bool {
	return func(v T) bool {
		return required(get(v))
	}
}

// TypeOf builds a predicate that extracts a field with get and passes
// when the field's runtime kind matches the expected kind.
func TypeOf[T any](get func(v T) any, kind reflect.Kind) func(v T) bool {
	return func(v T) bool {
		return reflect.ValueOf(get(v)).Kind() == kind
	}
}

// required reports whether the value counts as present.
func required(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
