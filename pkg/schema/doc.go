// Package schema compiles Go struct types into ordered field descriptors.
//
// A schema is an ordinary struct type; its exported fields, in declaration
// order, are the schema's fields. The descriptor produced by Of is the
// single source of truth for field names, declared types, and — crucially —
// the canonical field order that every structural algorithm (equality,
// ordering, rendering, conversion) walks. Two calls against the same type
// always yield the same sequence; the order is part of the schema's
// contract.
//
// Field naming honors the "mapstructure" struct tag:
//
//	type User struct {
//	    Username string `mapstructure:"username"`
//	    Age      int    `mapstructure:"age"`
//	    internal bool   // unexported: skipped
//	    Debug    string `mapstructure:"-"` // skipped
//	}
//
// Descriptors also carry the write-side type checks (Check) that keep the
// erased storage sound: a value only reaches storage after Check accepts
// it for the field's declared type, so reading it back under that type can
// never fail.
package schema
