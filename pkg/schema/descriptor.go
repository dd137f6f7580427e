package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Field describes one declared slot of a schema: its canonical name, its
// declared value type, and its position in the schema's declaration order.
type Field struct {
	Name  string
	Type  reflect.Type
	Index int
}

// Descriptor is the compiled form of a schema struct type: the ordered
// field list plus a name index. Descriptors are immutable and shared; the
// order of Fields() is the struct's declaration order and is part of the
// schema's contract, not an implementation detail.
type Descriptor struct {
	goType reflect.Type
	fields []Field
	byName map[string]int
}

// Tag is the struct tag consulted for field naming. It is the same tag
// vocabulary the conversion layer's decoder uses, so reflective and
// decoder-driven paths always agree on names.
const Tag = "mapstructure"

var cache sync.Map // reflect.Type -> *Descriptor

// Of compiles the descriptor for a schema struct type. Results are cached
// per type; two calls for the same type return the same ordered field
// sequence. Non-struct types and duplicate field names are schema errors.
func Of(t reflect.Type) (*Descriptor, error) {
	if d, ok := cache.Load(t); ok {
		return d.(*Descriptor), nil
	}
	d, err := compile(t)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

// MustOf is Of for schema types fixed at compile time; an invalid schema
// type is a programming error, so it panics instead of returning one.
func MustOf(t reflect.Type) *Descriptor {
	d, err := Of(t)
	if err != nil {
		panic(fmt.Sprintf("partial: invalid schema: %v", err))
	}
	return d
}

func compile(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, &SchemaError{Type: t, Reason: "schema type is nil"}
	}
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Reason: fmt.Sprintf("schema must be a struct type, got %s", t.Kind())}
	}

	d := &Descriptor{
		goType: t,
		byName: make(map[string]int, t.NumField()),
	}
	var errs []error
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup(Tag); ok {
			base, _, _ := strings.Cut(tag, ",")
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
		}
		if _, dup := d.byName[name]; dup {
			errs = append(errs, &FieldError{Name: name, Reason: "declared more than once"})
			continue
		}
		d.byName[name] = len(d.fields)
		d.fields = append(d.fields, Field{Name: name, Type: sf.Type, Index: i})
	}
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return d, nil
}

// GoType returns the struct type this descriptor was compiled from.
func (d *Descriptor) GoType() reflect.Type {
	return d.goType
}

// Fields returns the declared fields in canonical (declaration) order.
// The returned slice is shared; callers must not modify it.
func (d *Descriptor) Fields() []Field {
	return d.fields
}

// Len returns the number of declared fields.
func (d *Descriptor) Len() int {
	return len(d.fields)
}

// Lookup finds a declared field by canonical name.
func (d *Descriptor) Lookup(name string) (Field, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Check validates a value against a field's declared type. Every write
// into a record's storage must pass through Check first; that is what
// makes the read-side cast safe.
func (d *Descriptor) Check(f Field, value any) error {
	vt := reflect.TypeOf(value)
	if vt == f.Type {
		return nil
	}
	// Interface-typed fields accept any implementation, including a nil
	// interface value. Concrete fields require the exact declared type;
	// the typed API can only hand us an untyped nil through an interface.
	if f.Type.Kind() == reflect.Interface {
		if vt == nil || vt.Implements(f.Type) {
			return nil
		}
	}
	got := "nil"
	if vt != nil {
		got = vt.String()
	}
	return &FieldError{Name: f.Name, Reason: fmt.Sprintf("expected %s, got %s", f.Type, got), Value: value}
}

// Disjoint reports whether the receiver and other share no field names.
// On overlap it returns a FieldError for the first colliding name in the
// receiver's canonical order.
func (d *Descriptor) Disjoint(other *Descriptor) error {
	for _, f := range d.fields {
		if _, clash := other.byName[f.Name]; clash {
			return &FieldError{Name: f.Name, Reason: fmt.Sprintf("declared by both %s and %s", d.goType, other.goType)}
		}
	}
	return nil
}
