package filter

import (
	"encoding/json"
	"fmt"
)

// opKind describes one recognized operator token: its operand-shape
// validator and its two renderers. The table below is the single source of
// truth for which operators exist and what they compile to.
type opKind struct {
	token    string
	name     string // parameter-name segment, token without the '$'
	validate func(v any) error
	fragment func(field, param string, v any) Fragment
	operator func(param string, v any) Operator
}

var operators = opTable(
	arrayOp("$in", "in", "IN", KindIn),
	arrayOp("$notIn", "notIn", "NOT IN", KindNotIn),

	comparisonOp("$gt", "gt", ">", KindGreaterThan),
	comparisonOp("$gte", "gte", ">=", KindGreaterThanOrEqual),
	comparisonOp("$lt", "lt", "<", KindLessThan),
	comparisonOp("$lte", "lte", "<=", KindLessThanOrEqual),
	comparisonOp("$equalTo", "equalTo", "=", KindEqual),
	comparisonOp("$notEqualTo", "notEqualTo", "<>", KindNotEqual),

	betweenOp("$between", "between", "BETWEEN", KindBetween),
	betweenOp("$notBetween", "notBetween", "NOT BETWEEN", KindNotBetween),

	likeOp("$contains", "contains", "LIKE", KindLike, wrapBoth),
	likeOp("$notContains", "notContains", "NOT LIKE", KindNotLike, wrapBoth),
	likeOp("$iContains", "iContains", "ILIKE", KindILike, wrapBoth),
	likeOp("$notIContains", "notIContains", "NOT ILIKE", KindNotILike, wrapBoth),
	likeOp("$startsWith", "startsWith", "LIKE", KindLike, wrapSuffix),
	likeOp("$notStartsWith", "notStartsWith", "NOT LIKE", KindNotLike, wrapSuffix),
	likeOp("$endsWith", "endsWith", "LIKE", KindLike, wrapPrefix),
	likeOp("$notEndsWith", "notEndsWith", "NOT LIKE", KindNotLike, wrapPrefix),

	regexOp("$regex", "regex", "~"),
	regexOp("$notRegex", "notRegex", "!~"),
	regexOp("$regexi", "regexi", "~*"),
	regexOp("$notRegexi", "notRegexi", "!~*"),

	jsonOp("$jsonContains", "jsonContains", "@>"),
	jsonOp("$jsonContained", "jsonContained", "<@"),
	jsonOp("$jsonEquals", "jsonEquals", "="),
	jsonHasKeyOp(),
)

// Sentinel conditions are not reachable through operator tokens; they are
// recognized as bare strings only.
var (
	opIsNull    = nullCheckOp("isNull", "IS NULL", KindIsNull)
	opIsNotNull = nullCheckOp("isNotNull", "IS NOT NULL", KindIsNotNull)

	// bare scalars and bare arrays share the $equalTo and $in renderers
	opEqual = operators["$equalTo"]
	opIn    = operators["$in"]
)

func opTable(kinds ...*opKind) map[string]*opKind {
	table := make(map[string]*opKind, len(kinds))
	for _, k := range kinds {
		table[k.token] = k
	}
	return table
}

func comparisonOp(token, name, sqlOp string, kind Kind) *opKind {
	return &opKind{
		token:    token,
		name:     name,
		validate: scalarOperand(token),
		fragment: func(field, param string, v any) Fragment {
			return Fragment{
				Query:  fmt.Sprintf("%s %s :%s", field, sqlOp, param),
				Params: map[string]any{param: v},
			}
		},
		operator: func(_ string, v any) Operator {
			return Operator{Kind: kind, Value: v}
		},
	}
}

func arrayOp(token, name, sqlOp string, kind Kind) *opKind {
	return &opKind{
		token:    token,
		name:     name,
		validate: arrayOperand(token),
		fragment: func(field, param string, v any) Fragment {
			return Fragment{
				Query:  fmt.Sprintf("%s %s (:...%s)", field, sqlOp, param),
				Params: map[string]any{param: v},
			}
		},
		operator: func(_ string, v any) Operator {
			return Operator{Kind: kind, Value: v}
		},
	}
}

func betweenOp(token, name, sqlOp string, kind Kind) *opKind {
	return &opKind{
		token:    token,
		name:     name,
		validate: pairOperand(token),
		fragment: func(field, param string, v any) Fragment {
			pair := v.([]any)
			start, end := param+"_start", param+"_end"
			return Fragment{
				Query:  fmt.Sprintf("%s %s :%s AND :%s", field, sqlOp, start, end),
				Params: map[string]any{start: pair[0], end: pair[1]},
			}
		},
		operator: func(_ string, v any) Operator {
			return Operator{Kind: kind, Value: v}
		},
	}
}

func likeOp(token, name, sqlOp string, kind Kind, wrap func(string) string) *opKind {
	return &opKind{
		token:    token,
		name:     name,
		validate: stringOperand(token),
		fragment: func(field, param string, v any) Fragment {
			return Fragment{
				Query:  fmt.Sprintf("%s %s :%s", field, sqlOp, param),
				Params: map[string]any{param: wrap(v.(string))},
			}
		},
		operator: func(_ string, v any) Operator {
			return Operator{Kind: kind, Value: wrap(v.(string))}
		},
	}
}

func regexOp(token, name, sqlOp string) *opKind {
	return &opKind{
		token:    token,
		name:     name,
		validate: stringOperand(token),
		fragment: func(field, param string, v any) Fragment {
			return Fragment{
				Query:  fmt.Sprintf("%s %s :%s", field, sqlOp, param),
				Params: map[string]any{param: v},
			}
		},
		operator: func(param string, v any) Operator {
			return Operator{
				Kind:     KindRaw,
				Template: fmt.Sprintf("%%s %s :%s", sqlOp, param),
				Params:   map[string]any{param: v},
			}
		},
	}
}

// jsonOp operators take any JSON-serializable operand and bind it
// serialized, so the database side can compare jsonb values.
func jsonOp(token, name, sqlOp string) *opKind {
	return &opKind{
		token:    token,
		name:     name,
		validate: jsonOperand(token),
		fragment: func(field, param string, v any) Fragment {
			return Fragment{
				Query:  fmt.Sprintf("%s %s :%s", field, sqlOp, param),
				Params: map[string]any{param: mustJSON(v)},
			}
		},
		operator: func(param string, v any) Operator {
			return Operator{
				Kind:     KindRaw,
				Template: fmt.Sprintf("%%s %s :%s", sqlOp, param),
				Params:   map[string]any{param: mustJSON(v)},
			}
		},
	}
}

func jsonHasKeyOp() *opKind {
	return &opKind{
		token:    "$jsonHasKey",
		name:     "jsonHasKey",
		validate: stringOperand("$jsonHasKey"),
		fragment: func(field, param string, v any) Fragment {
			key := param + "_key"
			return Fragment{
				Query:  fmt.Sprintf("%s ? :%s", field, key),
				Params: map[string]any{key: v},
			}
		},
		operator: func(param string, v any) Operator {
			key := param + "_key"
			return Operator{
				Kind:     KindRaw,
				Template: fmt.Sprintf("%%s ? :%s", key),
				Params:   map[string]any{key: v},
			}
		},
	}
}

func nullCheckOp(name, sqlOp string, kind Kind) *opKind {
	return &opKind{
		name:     name,
		validate: func(any) error { return nil },
		fragment: func(field, _ string, _ any) Fragment {
			return Fragment{
				Query:  fmt.Sprintf("%s %s", field, sqlOp),
				Params: map[string]any{},
			}
		},
		operator: func(string, any) Operator {
			return Operator{Kind: kind}
		},
	}
}

func scalarOperand(token string) func(any) error {
	return func(v any) error {
		if !isScalar(v) {
			return InvalidOperandError{Operator: token, Want: "a scalar value", Value: v}
		}
		return nil
	}
}

func stringOperand(token string) func(any) error {
	return func(v any) error {
		if _, ok := v.(string); !ok {
			return InvalidOperandError{Operator: token, Want: "a string", Value: v}
		}
		return nil
	}
}

func arrayOperand(token string) func(any) error {
	return func(v any) error {
		if !isScalarSlice(v) {
			return InvalidOperandError{Operator: token, Want: "an array of scalar values", Value: v}
		}
		return nil
	}
}

func pairOperand(token string) func(any) error {
	return func(v any) error {
		s, ok := v.([]any)
		if !ok || len(s) != 2 || !isScalarSlice(v) {
			return InvalidOperandError{Operator: token, Want: "an array of two scalar values", Value: v}
		}
		return nil
	}
}

func jsonOperand(token string) func(any) error {
	return func(v any) error {
		if _, err := json.Marshal(v); err != nil {
			return InvalidOperandError{Operator: token, Want: "a JSON-serializable value", Value: v}
		}
		return nil
	}
}

// mustJSON is only called after jsonOperand validated the value.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func wrapBoth(s string) string   { return "%" + s + "%" }
func wrapSuffix(s string) string { return s + "%" }
func wrapPrefix(s string) string { return "%" + s }
