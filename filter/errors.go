package filter

import "fmt"

// ErrNoAccessOption is returned when no access options are provided to NewConverter.
var ErrNoAccessOption = fmt.Errorf("NewConverter: need atleast one of the access options: WithAllowAllColumns, WithAllowColumns, WithNestedJSONB")

// ErrUnsupportedTarget is returned by Compile for an unrecognized target.
var ErrUnsupportedTarget = fmt.Errorf("unsupported compile target")

// ErrInvalidField is returned in fragment mode when the field reference is
// empty or whitespace.
var ErrInvalidField = fmt.Errorf("field reference must be a non-empty string")

// ErrMissingCondition is returned when a condition is null or absent.
var ErrMissingCondition = fmt.Errorf("condition is missing")

// ErrMissingOperatorValue is returned when an operator object maps its
// operator to a null value.
var ErrMissingOperatorValue = fmt.Errorf("operator value is missing")

// AmbiguousConditionError is returned when a condition object does not have
// exactly one operator key.
type AmbiguousConditionError struct {
	Keys int
}

func (e AmbiguousConditionError) Error() string {
	return fmt.Sprintf("condition object must have exactly one operator, got %d", e.Keys)
}

type UnknownOperatorError struct {
	Token string
}

func (e UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator: %s", e.Token)
}

// InvalidOperandError is returned when an operator value does not match the
// operator's required shape.
type InvalidOperandError struct {
	Operator string
	Want     string
	Value    any
}

func (e InvalidOperandError) Error() string {
	return fmt.Sprintf("invalid value for %s operator (must be %s): %v", e.Operator, e.Want, e.Value)
}

// InvalidConditionError is returned for condition values that are neither
// operator objects, scalars, arrays, nor sentinel strings.
type InvalidConditionError struct {
	Value any
}

func (e InvalidConditionError) Error() string {
	return fmt.Sprintf("unsupported condition value: %v", e.Value)
}

type ColumnNotAllowedError struct {
	Column string
}

func (e ColumnNotAllowedError) Error() string {
	return fmt.Sprintf("column not allowed: %s", e.Column)
}

type InvalidOrderDirectionError struct {
	Field string
	Value any
}

func (e InvalidOrderDirectionError) Error() string {
	return fmt.Sprintf("invalid order direction for field %s: %v (must be asc/ascend/ascending/1 or desc/descend/descending/-1)", e.Field, e.Value)
}

// FieldError carries the filter field a compilation error occurred on.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}
