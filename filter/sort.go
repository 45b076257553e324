package filter

import (
	"sort"
	"strings"
)

// Order is one resolved sort directive.
type Order struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// Order resolves a sort directive map (field name to direction) into
// column/direction pairs, sorted by field name for deterministic output.
// Accepted directions are asc, ascend, ascending and 1 for ascending, and
// desc, descend, descending and -1 for descending; strings are
// case-insensitive. Fields resolve exactly like filter fields, including
// dotted relation names and column access rules.
func (c *Converter) Order(directives map[string]any, alias string) ([]Order, error) {
	fields := make([]string, 0, len(directives))
	for field := range directives {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	orders := make([]Order, 0, len(directives))
	for _, field := range fields {
		direction, err := orderDirection(field, directives[field])
		if err != nil {
			return nil, err
		}
		column, err := c.resolveField(field, alias)
		if err != nil {
			return nil, err
		}
		orders = append(orders, Order{Column: column, Direction: direction})
	}
	return orders, nil
}

func orderDirection(field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "asc", "ascend", "ascending":
			return "ASC", nil
		case "desc", "descend", "descending":
			return "DESC", nil
		}
	case float64:
		switch v {
		case 1:
			return "ASC", nil
		case -1:
			return "DESC", nil
		}
	case int:
		switch v {
		case 1:
			return "ASC", nil
		case -1:
			return "DESC", nil
		}
	}
	return "", InvalidOrderDirectionError{Field: field, Value: value}
}
