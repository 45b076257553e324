package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Converter compiles whole filter objects against a table alias, applying
// column access rules and field routing on top of the Compiler.
type Converter struct {
	compiler          *Compiler
	allowAllColumns   bool
	allowedColumns    []string
	disallowedColumns []string
	nestedColumn      string
	nestedExemptions  []string
	emptyCondition    string
	arrayDriver       arrayDriverFunc
}

// NewConverter creates a new Converter. At least one access option
// (WithAllowAllColumns, WithAllowColumns, WithNestedJSONB) is required so
// that exposing a converter to untrusted input is an explicit decision.
func NewConverter(options ...Option) (*Converter, error) {
	converter := &Converter{
		emptyCondition: "FALSE",
	}
	hasAccessOption := false
	for _, option := range options {
		if option.f != nil {
			option.f(converter)
		}
		if option.isAccessOption {
			hasAccessOption = true
		}
	}
	if !hasAccessOption {
		return nil, ErrNoAccessOption
	}
	if converter.compiler == nil {
		converter.compiler = NewCompiler(nil)
	}
	return converter, nil
}

// Convert compiles a JSON filter object into a single WHERE expression with
// named-placeholder parameters. Columns are prefixed with alias unless the
// field addresses a joined relation or a nested JSONB column. Compilation
// is all-or-nothing: the first invalid field or condition fails the whole
// call. An empty filter yields the configured empty condition (FALSE by
// default, see WithEmptyCondition).
func (c *Converter) Convert(query []byte, alias string) (string, map[string]any, error) {
	var tree map[string]any
	if err := json.Unmarshal(query, &tree); err != nil {
		return "", nil, err
	}

	builder := NewWhereBuilder()
	if err := c.Compose(builder, JoinAnd, tree, alias); err != nil {
		return "", nil, err
	}

	expr, params := builder.Clause()
	if expr == "" {
		return c.emptyCondition, params, nil
	}
	return expr, params, nil
}

// Operators compiles a flat field-to-condition map into abstract operator
// values for a declarative finder API. Logical keys are not supported here;
// nested boolean trees go through Convert or Compose instead.
func (c *Converter) Operators(tree map[string]any) (map[string]Operator, error) {
	fields := make([]string, 0, len(tree))
	for field := range tree {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	ops := make(map[string]Operator, len(tree))
	for _, field := range fields {
		if field == "$and" || field == "$or" {
			return nil, FieldError{Field: field, Err: fmt.Errorf("logical groups are not supported in operator mode")}
		}
		if !c.allowed(field) {
			return nil, ColumnNotAllowedError{Column: field}
		}
		op, err := c.compiler.Operator(field, tree[field])
		if err != nil {
			return nil, FieldError{Field: field, Err: err}
		}
		ops[field] = op
	}
	return ops, nil
}

// resolveField maps a filter field name to the column reference used in the
// generated SQL. Dotted names address a joined relation's column, replacing
// the base alias, but only when the field is declared as a real column
// (allow-listed, allow-all, or a nested exemption); other names are routed
// into the nested JSONB column when one is configured, or prefixed with the
// base alias.
func (c *Converter) resolveField(field, alias string) (string, error) {
	if !c.allowed(field) {
		return "", ColumnNotAllowedError{Column: field}
	}

	if relation, column, ok := strings.Cut(field, "."); ok {
		if isIdentifier(relation) && isIdentifier(column) && c.declared(field) {
			return field, nil
		}
	}

	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	if c.nestedColumn != "" && !c.isExempt(field) {
		// the field name lands inside a SQL string literal
		escaped := strings.ReplaceAll(field, "'", "''")
		return fmt.Sprintf("%s%s->>'%s'", prefix, c.nestedColumn, escaped), nil
	}
	return prefix + field, nil
}

func (c *Converter) allowed(column string) bool {
	for _, disallowed := range c.disallowedColumns {
		if disallowed == column {
			return false
		}
	}
	if c.allowAllColumns {
		return true
	}
	for _, allowed := range c.allowedColumns {
		if allowed == column {
			return true
		}
	}
	// with a nested JSONB column every remaining field is either routed
	// into it or, when exempt, a declared real column
	return c.nestedColumn != ""
}

// declared reports whether field names a real column on its own right, as
// opposed to being admitted by the nested-JSONB catch-all. Only declared
// fields may bypass JSONB routing through the dotted relation form.
func (c *Converter) declared(field string) bool {
	if c.allowAllColumns || c.isExempt(field) {
		return true
	}
	for _, allowed := range c.allowedColumns {
		if allowed == field {
			return true
		}
	}
	return false
}

func (c *Converter) isExempt(field string) bool {
	for _, exemption := range c.nestedExemptions {
		if exemption == field {
			return true
		}
	}
	return false
}

func (c *Converter) applyArrayDriver(params map[string]any) {
	if c.arrayDriver == nil {
		return
	}
	for name, value := range params {
		if s, ok := value.([]any); ok {
			params[name] = c.arrayDriver(s)
		}
	}
}
