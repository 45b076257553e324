package filter

import (
	"strings"

	"github.com/google/uuid"
)

// Target selects the output encoding of a compilation.
type Target int

const (
	// FragmentTarget produces a parameterized SQL clause.
	FragmentTarget Target = iota + 1
	// OperatorTarget produces an abstract Operator value.
	OperatorTarget
)

// Result is implemented by Fragment and Operator, the two compilation
// outputs.
type Result interface {
	result()
}

// Fragment is a compiled SQL clause with named placeholders and the
// parameter bindings they refer to. Params is never nil; it is empty for
// null checks.
type Fragment struct {
	Query  string
	Params map[string]any
}

func (Fragment) result() {}

// Sentinel condition strings recognized as bare values.
const (
	SentinelIsNull    = "$isNull"
	SentinelIsNotNull = "$isNotNull"
)

// Compiler turns a single condition into a Fragment or an Operator. It is
// stateless apart from the injected id generator and safe for concurrent
// use when the generator is.
type Compiler struct {
	newID func() string
}

// NewCompiler returns a Compiler using newID to generate the run-unique
// parameter-name prefix, one fresh id per compiled condition. A nil newID
// falls back to a UUID-derived generator; inject a deterministic sequence
// for reproducible output.
func NewCompiler(newID func() string) *Compiler {
	if newID == nil {
		newID = defaultID
	}
	return &Compiler{newID: newID}
}

func defaultID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Compile validates condition and renders it for the given target. field is
// the column reference the fragment addresses; in operator mode it only
// seeds parameter names of raw operators and is not validated.
func (c *Compiler) Compile(target Target, field string, condition any) (Result, error) {
	switch target {
	case FragmentTarget:
		return c.Fragment(field, condition)
	case OperatorTarget:
		return c.Operator(field, condition)
	default:
		return nil, ErrUnsupportedTarget
	}
}

// Fragment compiles condition into a parameterized SQL clause on field.
func (c *Compiler) Fragment(field string, condition any) (Fragment, error) {
	if strings.TrimSpace(field) == "" {
		return Fragment{}, ErrInvalidField
	}
	op, value, err := resolve(condition)
	if err != nil {
		return Fragment{}, err
	}
	return op.fragment(field, c.paramName(op, field), value), nil
}

// Operator compiles condition into its abstract operator value.
func (c *Compiler) Operator(field string, condition any) (Operator, error) {
	op, value, err := resolve(condition)
	if err != nil {
		return Operator{}, err
	}
	return op.operator(c.paramName(op, field), value), nil
}

// resolve classifies the condition value once and returns the operator kind
// that renders it together with its operand. Validation order: missing
// condition, object shape, missing operator value, unknown operator,
// operand shape.
func resolve(condition any) (*opKind, any, error) {
	if condition == nil {
		return nil, nil, ErrMissingCondition
	}

	switch v := condition.(type) {
	case map[string]any:
		if len(v) != 1 {
			return nil, nil, AmbiguousConditionError{Keys: len(v)}
		}
		var token string
		var value any
		for token, value = range v {
		}
		if value == nil {
			return nil, nil, ErrMissingOperatorValue
		}
		op, ok := operators[token]
		if !ok {
			return nil, nil, UnknownOperatorError{Token: token}
		}
		if err := op.validate(value); err != nil {
			return nil, nil, err
		}
		return op, value, nil
	case []any:
		if err := opIn.validate(v); err != nil {
			return nil, nil, err
		}
		return opIn, v, nil
	case string:
		switch v {
		case SentinelIsNull:
			return opIsNull, nil, nil
		case SentinelIsNotNull:
			return opIsNotNull, nil, nil
		}
		return opEqual, v, nil
	default:
		if isScalar(v) {
			return opEqual, v, nil
		}
		return nil, nil, InvalidConditionError{Value: v}
	}
}

// paramName builds the {id}_{operator}_{field} parameter-name base, with
// field characters outside [letters, digits, underscore] collapsed.
func (c *Compiler) paramName(op *opKind, field string) string {
	name := c.newID() + "_" + op.name
	if f := sanitizeField(field); f != "" {
		name += "_" + f
	}
	return name
}
