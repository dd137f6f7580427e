/*
Package partial implements records in which every field may or may not be set.

A Record[S] sits between a plain struct (every field always has a value) and a
map[string]any (any key, any type, no guarantees): the field names and their
value types are fixed by the schema struct S, but each field is independently
present or absent. Records are pure values — every operation returns a new
Record and never mutates its input, so records can be shared across goroutines
without coordination.

# Declaring a schema

A schema is an ordinary struct type. Exported fields, in declaration order,
are the schema's fields; the "mapstructure" tag renames them:

	type User struct {
		Username string `mapstructure:"username"`
		Age      int    `mapstructure:"age"`
	}

# Usage

Build values with Empty and the accessor functions. Field value types are
checked against the schema at each call:

	r := partial.Empty[User]()
	r = partial.Set(r, "username", "ann")
	r = partial.Set(r, "age", 31)

	name, ok := partial.Get[string](r, "username") // "ann", true

	fmt.Println(r) // (partial.FromRecord { username: "ann", age: 31 })

Convert to and from plain structs:

	r := partial.FromRecordExact(User{Username: "ann", Age: 31})

	type UserPatch struct {
		Username *string `mapstructure:"username"`
		Age      *int    `mapstructure:"age"`
	}
	p := partial.ToRecord[UserPatch](r) // nil pointer = absent field

# Error model

The accessor API has no error returns. Referencing an undeclared field,
storing a value of the wrong type, inserting over a present field, or merging
overlapping schemas are programming errors, not data conditions — they panic.
The only paths that accept untrusted data, FromMap and the schema compiler
Of, return errors instead.

# Structural operations

Equal, Compare, and String all walk the schema's fields in declaration order,
so their results are deterministic and independent of the order in which
fields were set. Compare orders an absent field before any present value and
otherwise compares field values lexicographically in schema order.
*/
package partial
