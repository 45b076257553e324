// Package filter compiles MongoDB-style JSON filter objects into
// parameterized SQL WHERE clauses with named placeholders, or into an
// abstract operator representation for declarative finder APIs.
//
// A filter is a JSON object mapping field names to conditions, optionally
// nested under the logical keys $and and $or:
//
//	{
//		"name": "John",
//		"$or": [
//			{"age": {"$gte": 18}},
//			{"role": {"$in": ["admin", "moderator"]}}
//		]
//	}
//
// Conditions are either operator objects ({"$gte": 18}), bare scalars
// (equality), bare arrays (membership), or the sentinel strings "$isNull"
// and "$isNotNull".
//
// Compiled fragments use named placeholders of the form :name, and
// :...name for array placeholders that the binding layer expands to a
// placeholder list. Parameter names embed a per-compilation unique id so
// fragments from independent compilations can be merged into one clause
// without collisions.
//
// Field names are interpolated into the generated SQL. With untrusted
// input, always restrict fields with WithAllowColumns or route them into
// a JSONB column with WithNestedJSONB; WithAllowAllColumns is only safe
// when field names come from trusted code.
package filter
