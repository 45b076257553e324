package filter

import (
	"fmt"
	"sort"
)

// Join is the boolean connective used when merging a clause into a sink.
type Join string

const (
	JoinAnd Join = "AND"
	JoinOr  Join = "OR"
)

// ClauseSink accumulates compiled clauses. It is the boundary to the
// caller's query builder: a sink receives leaf clauses and bracketed
// sub-groups and merges them with AND/OR semantics. The composer treats a
// sink as exclusively owned for the duration of one Compose call and never
// retains it.
type ClauseSink interface {
	And(query string, params map[string]any)
	Or(query string, params map[string]any)
	AndGroup(build func(ClauseSink))
	OrGroup(build func(ClauseSink))
}

// Compose walks the filter tree and merges every compiled clause into sink,
// joined with join. Keys are visited in sorted order so output is
// deterministic. $and/$or keys open a bracketed sub-group whose elements
// are composed with the corresponding inner connective; any other key is
// resolved to a column and compiled as a single condition.
//
// Compilation is all-or-nothing: clauses reach sink only after the whole
// tree compiled, so on error the sink is left untouched.
//
// The tree must be a freshly built JSON-like value. Aliased or cyclic
// sub-structures are not detected and will recurse without bound.
func (c *Converter) Compose(sink ClauseSink, join Join, tree map[string]any, alias string) error {
	buffer := &clauseBuffer{}
	if err := c.compose(buffer, join, tree, alias); err != nil {
		return err
	}
	buffer.replay(sink)
	return nil
}

func (c *Converter) compose(sink ClauseSink, join Join, tree map[string]any, alias string) error {
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := tree[key]
		switch key {
		case "$and", "$or":
			subs, ok := anyToSliceMapAny(value)
			if !ok {
				return FieldError{Field: key, Err: fmt.Errorf("expected an array of filter objects, got: %v", value)}
			}
			inner := JoinAnd
			if key == "$or" {
				inner = JoinOr
			}
			var err error
			group := func(s ClauseSink) {
				for _, sub := range subs {
					if err != nil {
						return
					}
					err = c.compose(s, inner, sub, alias)
				}
			}
			if join == JoinOr {
				sink.OrGroup(group)
			} else {
				sink.AndGroup(group)
			}
			if err != nil {
				return err
			}
		default:
			column, err := c.resolveField(key, alias)
			if err != nil {
				return err
			}
			fragment, err := c.compiler.Fragment(column, value)
			if err != nil {
				return FieldError{Field: key, Err: err}
			}
			c.applyArrayDriver(fragment.Params)
			if join == JoinOr {
				sink.Or(fragment.Query, fragment.Params)
			} else {
				sink.And(fragment.Query, fragment.Params)
			}
		}
	}
	return nil
}

// clauseBuffer records sink calls during the walk so Compose can replay
// them once the whole tree compiled. A caller's sink never sees a partial
// result.
type clauseBuffer struct {
	ops []bufferedOp
}

type bufferedOp struct {
	join   Join
	query  string
	params map[string]any
	group  *clauseBuffer
}

func (b *clauseBuffer) And(query string, params map[string]any) {
	b.ops = append(b.ops, bufferedOp{join: JoinAnd, query: query, params: params})
}

func (b *clauseBuffer) Or(query string, params map[string]any) {
	b.ops = append(b.ops, bufferedOp{join: JoinOr, query: query, params: params})
}

func (b *clauseBuffer) AndGroup(build func(ClauseSink)) {
	b.bufferGroup(JoinAnd, build)
}

func (b *clauseBuffer) OrGroup(build func(ClauseSink)) {
	b.bufferGroup(JoinOr, build)
}

func (b *clauseBuffer) bufferGroup(join Join, build func(ClauseSink)) {
	inner := &clauseBuffer{}
	build(inner)
	b.ops = append(b.ops, bufferedOp{join: join, group: inner})
}

func (b *clauseBuffer) replay(sink ClauseSink) {
	for _, op := range b.ops {
		group := op.group
		switch {
		case group != nil && op.join == JoinOr:
			sink.OrGroup(func(s ClauseSink) { group.replay(s) })
		case group != nil:
			sink.AndGroup(func(s ClauseSink) { group.replay(s) })
		case op.join == JoinOr:
			sink.Or(op.query, op.params)
		default:
			sink.And(op.query, op.params)
		}
	}
}

// WhereBuilder is a ClauseSink accumulating a single WHERE expression and
// its parameters. Leaf clauses are joined unbracketed; groups are wrapped
// in parentheses. Empty clauses and empty groups are dropped.
type WhereBuilder struct {
	expr   string
	params map[string]any
}

func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{params: map[string]any{}}
}

func (b *WhereBuilder) And(query string, params map[string]any) {
	b.merge(JoinAnd, query, params)
}

func (b *WhereBuilder) Or(query string, params map[string]any) {
	b.merge(JoinOr, query, params)
}

func (b *WhereBuilder) AndGroup(build func(ClauseSink)) {
	b.group(JoinAnd, build)
}

func (b *WhereBuilder) OrGroup(build func(ClauseSink)) {
	b.group(JoinOr, build)
}

// Clause returns the accumulated expression and its parameter bindings.
func (b *WhereBuilder) Clause() (string, map[string]any) {
	return b.expr, b.params
}

func (b *WhereBuilder) merge(join Join, query string, params map[string]any) {
	if query == "" {
		return
	}
	for name, value := range params {
		b.params[name] = value
	}
	if b.expr == "" {
		b.expr = query
		return
	}
	b.expr += " " + string(join) + " " + query
}

func (b *WhereBuilder) group(join Join, build func(ClauseSink)) {
	inner := NewWhereBuilder()
	build(inner)
	if inner.expr == "" {
		return
	}
	b.merge(join, "("+inner.expr+")", inner.params)
}
