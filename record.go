package partial

import (
	"fmt"
	"reflect"

	"github.com/aretw0/partial/internal/storage"
	"github.com/aretw0/partial/pkg/schema"
)

// Record is a partial record over the schema struct type S: every field S
// declares may independently be present or absent. The zero value is a
// record with no fields set, same as Empty[S]().
//
// Records are immutable. Every accessor returns a new Record and leaves
// its input untouched.
type Record[S any] struct {
	fields storage.Map
}

// Empty returns the record with no fields present.
func Empty[S any]() Record[S] {
	return Record[S]{fields: storage.Empty()}
}

// SchemaOf returns the compiled descriptor for the schema type S.
// It panics if S is not a valid schema struct.
func SchemaOf[S any]() *schema.Descriptor {
	return schema.MustOf(reflect.TypeOf((*S)(nil)).Elem())
}

// Get returns the value of a field, and whether it is present. The type
// parameter V must be the field's declared type:
//
//	name, ok := partial.Get[string](r, "username")
//
// Referencing an undeclared field, or instantiating V with anything other
// than the field's declared type, panics.
func Get[V any, S any](r Record[S], name string) (V, bool) {
	d := SchemaOf[S]()
	f := mustField(d, name)
	mustDeclared[V](d, f)
	v, ok := r.fields.Get(name)
	if !ok {
		var zero V
		return zero, false
	}
	// Writes are gated by the descriptor's type check, so this assertion
	// only misses for a nil stored in an interface-typed field.
	t, cast := v.(V)
	if !cast && v != nil {
		panic(fmt.Sprintf("partial: field %q holds %T, schema declares %s", name, v, f.Type))
	}
	return t, true
}

// Insert sets a field that is currently absent. Inserting over a present
// field is a programming error and panics; use Set for an unconditional
// write.
func Insert[V any, S any](r Record[S], name string, value V) Record[S] {
	d := SchemaOf[S]()
	f := mustField(d, name)
	mustCheck(d, f, value)
	next, _, present := r.fields.Alter(name, func(any, bool) (any, bool) {
		return value, true
	})
	if present {
		panic(fmt.Sprintf("partial: insert: field %q of %s is already present", name, d.GoType()))
	}
	return Record[S]{fields: next}
}

// Set writes a field unconditionally. The previous presence or value of
// the field is irrelevant; afterwards the field is present with value.
func Set[V any, S any](r Record[S], name string, value V) Record[S] {
	d := SchemaOf[S]()
	f := mustField(d, name)
	mustCheck(d, f, value)
	next, _, _ := r.fields.Alter(name, func(any, bool) (any, bool) {
		return value, true
	})
	return Record[S]{fields: next}
}

// Modify applies fn to the field's value when it is present; when the
// field is absent the record is returned unchanged and fn is not called.
func Modify[V any, S any](r Record[S], name string, fn func(V) V) Record[S] {
	d := SchemaOf[S]()
	f := mustField(d, name)
	mustDeclared[V](d, f)
	next, _, _ := r.fields.Alter(name, func(prev any, present bool) (any, bool) {
		if !present {
			return nil, false
		}
		tv, _ := prev.(V)
		return fn(tv), true
	})
	return Record[S]{fields: next}
}

// Delete clears a field. Deleting an absent field is a no-op.
func Delete[S any](r Record[S], name string) Record[S] {
	d := SchemaOf[S]()
	mustField(d, name)
	next, _, _ := r.fields.Alter(name, func(any, bool) (any, bool) {
		return nil, false
	})
	return Record[S]{fields: next}
}

// DisjointUnion merges two records with non-overlapping schemas into a
// record of the combined schema SC. SA and SB must share no field names,
// and SC must declare exactly the fields of SA and SB with identical
// types; any violation panics. Every present field of either input is
// present in the result with the same value.
func DisjointUnion[SC any, SA any, SB any](a Record[SA], b Record[SB]) Record[SC] {
	da, db, dc := SchemaOf[SA](), SchemaOf[SB](), SchemaOf[SC]()
	if err := da.Disjoint(db); err != nil {
		panic(fmt.Sprintf("partial: disjoint union of %s and %s: %v", da.GoType(), db.GoType(), err))
	}
	if dc.Len() != da.Len()+db.Len() {
		panic(fmt.Sprintf("partial: disjoint union: %s declares %d fields, want %d (%s + %s)",
			dc.GoType(), dc.Len(), da.Len()+db.Len(), da.GoType(), db.GoType()))
	}

	out := Empty[SC]()
	for _, f := range dc.Fields() {
		// Left operand takes precedence, though the disjointness check
		// above makes a collision unreachable.
		src := a.fields
		fa, declared := da.Lookup(f.Name)
		if !declared {
			fa, declared = db.Lookup(f.Name)
			src = b.fields
		}
		if !declared {
			panic(fmt.Sprintf("partial: disjoint union: field %q of %s is declared by neither operand", f.Name, dc.GoType()))
		}
		if fa.Type != f.Type {
			panic(fmt.Sprintf("partial: disjoint union: field %q is %s in %s but %s in the operand schema", f.Name, f.Type, dc.GoType(), fa.Type))
		}
		if v, ok := src.Get(f.Name); ok {
			out.fields, _, _ = out.fields.Alter(f.Name, func(any, bool) (any, bool) {
				return v, true
			})
		}
	}
	return out
}

// Has reports whether the named field is present. The field must be
// declared by S.
func (r Record[S]) Has(name string) bool {
	mustField(SchemaOf[S](), name)
	return r.fields.Has(name)
}

// Len returns the number of fields currently present.
func (r Record[S]) Len() int {
	return r.fields.Len()
}

// FieldNames returns the names of the present fields in the schema's
// canonical order.
func (r Record[S]) FieldNames() []string {
	var names []string
	for _, f := range SchemaOf[S]().Fields() {
		if r.fields.Has(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

func mustField(d *schema.Descriptor, name string) schema.Field {
	f, ok := d.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("partial: field %q is not declared by schema %s", name, d.GoType()))
	}
	return f
}

// mustDeclared pins the type parameter V to the field's declared type so
// the assertion on the read path cannot fail.
func mustDeclared[V any](d *schema.Descriptor, f schema.Field) {
	if vt := reflect.TypeOf((*V)(nil)).Elem(); vt != f.Type {
		panic(fmt.Sprintf("partial: field %q of %s is declared as %s, not %s", f.Name, d.GoType(), f.Type, vt))
	}
}

func mustCheck(d *schema.Descriptor, f schema.Field, value any) {
	if err := d.Check(f, value); err != nil {
		panic(fmt.Sprintf("partial: %v", err))
	}
}
