package filter

// Kind identifies the abstract meaning of a compiled Operator. The set is
// closed: consumers can exhaustively map every kind onto their own query
// representation.
type Kind string

const (
	KindEqual              Kind = "equal"
	KindNotEqual           Kind = "notEqual"
	KindIn                 Kind = "in"
	KindNotIn              Kind = "notIn"
	KindGreaterThan        Kind = "greaterThan"
	KindGreaterThanOrEqual Kind = "greaterThanOrEqual"
	KindLessThan           Kind = "lessThan"
	KindLessThanOrEqual    Kind = "lessThanOrEqual"
	KindBetween            Kind = "between"
	KindNotBetween         Kind = "notBetween"
	KindLike               Kind = "like"
	KindNotLike            Kind = "notLike"
	KindILike              Kind = "iLike"
	KindNotILike           Kind = "notILike"
	KindIsNull             Kind = "isNull"
	KindIsNotNull          Kind = "isNotNull"

	// KindRaw is a deferred expression for operators without a native
	// representation in the finder vocabulary (regex and JSON operators).
	// Template holds the expression with a %s slot for the column
	// reference, and Params holds its isolated parameter bindings.
	KindRaw Kind = "raw"
)

// Operator is the abstract encoding of a compiled condition, consumed by
// declarative finder APIs instead of a SQL fragment.
type Operator struct {
	Kind  Kind
	Value any

	// Template and Params are set only for KindRaw.
	Template string
	Params   map[string]any
}

func (Operator) result() {}
