package filter_test

import (
	"reflect"
	"testing"

	"github.com/charan379/filtersql/filter"
)

func TestConverter_Order(t *testing.T) {
	tests := []struct {
		name       string
		options    []filter.Option
		directives map[string]any
		alias      string
		orders     []filter.Order
		err        error
	}{
		{
			"string directions",
			[]filter.Option{filter.WithAllowAllColumns()},
			map[string]any{"name": "asc", "age": "desc"},
			"u",
			[]filter.Order{
				{Column: "u.age", Direction: "DESC"},
				{Column: "u.name", Direction: "ASC"},
			},
			nil,
		},
		{
			"long form and case-insensitive directions",
			[]filter.Option{filter.WithAllowAllColumns()},
			map[string]any{"a": "Ascending", "b": "DESCEND", "c": "ascend", "d": "Descending"},
			"t",
			[]filter.Order{
				{Column: "t.a", Direction: "ASC"},
				{Column: "t.b", Direction: "DESC"},
				{Column: "t.c", Direction: "ASC"},
				{Column: "t.d", Direction: "DESC"},
			},
			nil,
		},
		{
			"numeric directions",
			[]filter.Option{filter.WithAllowAllColumns()},
			map[string]any{"name": float64(1), "age": float64(-1)},
			"u",
			[]filter.Order{
				{Column: "u.age", Direction: "DESC"},
				{Column: "u.name", Direction: "ASC"},
			},
			nil,
		},
		{
			"dotted field selects the relation alias",
			[]filter.Option{filter.WithAllowAllColumns()},
			map[string]any{"profile.created_at": "desc"},
			"u",
			[]filter.Order{
				{Column: "profile.created_at", Direction: "DESC"},
			},
			nil,
		},
		{
			"invalid direction",
			[]filter.Option{filter.WithAllowAllColumns()},
			map[string]any{"name": "sideways"},
			"u",
			nil,
			filter.InvalidOrderDirectionError{Field: "name", Value: "sideways"},
		},
		{
			"invalid numeric direction",
			[]filter.Option{filter.WithAllowAllColumns()},
			map[string]any{"name": float64(2)},
			"u",
			nil,
			filter.InvalidOrderDirectionError{Field: "name", Value: float64(2)},
		},
		{
			"column not allowed",
			[]filter.Option{filter.WithAllowColumns("name")},
			map[string]any{"password": "asc"},
			"u",
			nil,
			filter.ColumnNotAllowedError{Column: "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := filter.NewConverter(tt.options...)
			if err != nil {
				t.Fatal(err)
			}
			orders, err := c.Order(tt.directives, tt.alias)
			if tt.err != nil {
				if err == nil || err.Error() != tt.err.Error() {
					t.Fatalf("expected error %q, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(orders, tt.orders) {
				t.Errorf("expected %v, got %v", tt.orders, orders)
			}
		})
	}
}
