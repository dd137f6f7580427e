package partial

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/partial/pkg/schema"
)

// FromRecord builds a record of schema S from a plain struct value. The
// source struct's fields are walked in their own declaration order: every
// field whose name S also declares becomes present with the source value,
// source fields unknown to S are dropped, and fields of S missing from the
// source stay absent. A source field whose name matches but whose type
// does not is a programming error and panics.
func FromRecord[S any](src any) Record[S] {
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("partial: FromRecord: source must be a struct, got %T", src))
	}
	sd := schema.MustOf(rv.Type())
	d := SchemaOf[S]()

	r := Empty[S]()
	for _, sf := range sd.Fields() {
		f, declared := d.Lookup(sf.Name)
		if !declared {
			continue
		}
		if sf.Type != f.Type && !(f.Type.Kind() == reflect.Interface && sf.Type.Implements(f.Type)) {
			panic(fmt.Sprintf("partial: FromRecord: field %q is %s in %s but declared %s by %s",
				sf.Name, sf.Type, sd.GoType(), f.Type, d.GoType()))
		}
		r = Insert(r, f.Name, rv.Field(sf.Index).Interface())
	}
	return r
}

// FromRecordExact is FromRecord with the source pinned to the schema type
// itself, so the schema can be inferred at the call site:
//
//	r := partial.FromRecordExact(User{Username: "ann", Age: 31})
//
// Every field of the result is present.
func FromRecordExact[S any](src S) Record[S] {
	return FromRecord[S](src)
}

// ToRecord converts a record into a plain struct T in which every field of
// the schema S appears under the same name with a pointer type: present
// fields point at their value, absent fields are nil. T declaring a
// different field set, or a field that is not a pointer to the schema's
// declared type, panics.
func ToRecord[T any, S any](r Record[S]) T {
	d := SchemaOf[S]()
	dt := schema.MustOf(reflect.TypeOf((*T)(nil)).Elem())
	if dt.Len() != d.Len() {
		panic(fmt.Sprintf("partial: ToRecord: %s declares %d fields, schema %s declares %d",
			dt.GoType(), dt.Len(), d.GoType(), d.Len()))
	}

	out := reflect.New(dt.GoType()).Elem()
	for _, f := range d.Fields() {
		tf, declared := dt.Lookup(f.Name)
		if !declared {
			panic(fmt.Sprintf("partial: ToRecord: %s does not declare field %q", dt.GoType(), f.Name))
		}
		if tf.Type != reflect.PointerTo(f.Type) {
			panic(fmt.Sprintf("partial: ToRecord: field %q of %s must be %s, got %s",
				f.Name, dt.GoType(), reflect.PointerTo(f.Type), tf.Type))
		}
		v, ok := r.fields.Get(f.Name)
		if !ok {
			continue
		}
		p := reflect.New(f.Type)
		if v != nil {
			p.Elem().Set(reflect.ValueOf(v))
		}
		out.Field(tf.Index).Set(p)
	}
	return out.Interface().(T)
}

// FromMap builds a record of schema S from loosely-typed data, such as
// decoded JSON or configuration. Only keys present in data become present
// fields; keys S does not declare are ignored. Values are converted to the
// declared field types by mapstructure, so e.g. an int may populate a
// float field. Unlike the typed accessors, malformed data is an input
// condition, not a programming error, so FromMap returns an error.
func FromMap[S any](data map[string]any) (Record[S], error) {
	d := SchemaOf[S]()

	var decoded S
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &decoded,
		TagName:  schema.Tag,
		Metadata: &md,
	})
	if err != nil {
		return Record[S]{}, fmt.Errorf("partial: build decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return Record[S]{}, fmt.Errorf("partial: decode map: %w", err)
	}

	// Presence comes from the keys the decoder consumed, not from raw
	// input-key equality: the decoder matches keys case-insensitively,
	// and it reports them under their canonical field names. Nested
	// decodes show up as dotted paths; only the top level carries
	// presence.
	consumed := make(map[string]bool, len(md.Keys))
	for _, key := range md.Keys {
		top, _, _ := strings.Cut(key, ".")
		consumed[top] = true
	}

	rv := reflect.ValueOf(decoded)
	r := Empty[S]()
	for _, f := range d.Fields() {
		if !consumed[f.Name] {
			continue
		}
		r = Insert(r, f.Name, rv.Field(f.Index).Interface())
	}
	return r, nil
}

// ToMap returns the present fields as a map, in no particular iteration
// order. Feeding the result back to FromMap yields a record with the same
// present fields; values survive unchanged because they already carry the
// declared field types, though FromMap would coerce them if they did not.
func ToMap[S any](r Record[S]) map[string]any {
	out := make(map[string]any, r.Len())
	for _, f := range SchemaOf[S]().Fields() {
		if v, ok := r.fields.Get(f.Name); ok {
			out[f.Name] = v
		}
	}
	return out
}
