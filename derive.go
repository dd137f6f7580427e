package partial

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/partial/pkg/schema"
)

// Equal reports whether two records of the same schema hold the same
// fields with the same values. Fields are compared in canonical order: an
// absent field only equals an absent field, and present values are
// compared with reflect.DeepEqual.
func (r Record[S]) Equal(o Record[S]) bool {
	for _, f := range SchemaOf[S]().Fields() {
		a, aok := r.fields.Get(f.Name)
		b, bok := o.fields.Get(f.Name)
		if aok != bok {
			return false
		}
		if aok && !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}

// Compare orders two records of the same schema lexicographically over
// the canonical field sequence and returns -1, 0, or +1. At each field an
// absent value orders before any present value; two present values are
// ordered by the field's value type. The first non-equal field decides.
//
// Ordering is defined for bool, integer, float, and string kinds, byte
// slices, and time.Time. Comparing records whose deciding field has any
// other type panics; such schemas still support Equal.
func (r Record[S]) Compare(o Record[S]) int {
	for _, f := range SchemaOf[S]().Fields() {
		a, aok := r.fields.Get(f.Name)
		b, bok := o.fields.Get(f.Name)
		switch {
		case !aok && !bok:
			continue
		case !aok:
			return -1
		case !bok:
			return 1
		}
		if c := compareValues(f, a, b); c != 0 {
			return c
		}
	}
	return 0
}

var timeType = reflect.TypeOf(time.Time{})

func compareValues(f schema.Field, a, b any) int {
	if f.Type == timeType {
		return a.(time.Time).Compare(b.(time.Time))
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch f.Type.Kind() {
	case reflect.Bool:
		x, y := av.Bool(), bv.Bool()
		switch {
		case x == y:
			return 0
		case !x: // false < true
			return -1
		default:
			return 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(av.Int(), bv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(av.Uint(), bv.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(av.Float(), bv.Float())
	case reflect.String:
		return cmp.Compare(av.String(), bv.String())
	case reflect.Slice:
		if f.Type.Elem().Kind() == reflect.Uint8 {
			return bytes.Compare(av.Bytes(), bv.Bytes())
		}
	}
	// Unordered types can still agree; only a real order decision is
	// unanswerable.
	if reflect.DeepEqual(a, b) {
		return 0
	}
	panic(fmt.Sprintf("partial: field %q: values of type %s have no defined order", f.Name, f.Type))
}

// String renders the present fields in canonical order:
//
//	(partial.FromRecord { username: "ann", age: 31 })
//
// Absent fields are omitted; a record with nothing present renders as
// "(partial.FromRecord {})". String values are quoted, everything else
// renders with %v.
func (r Record[S]) String() string {
	var frags []string
	for _, f := range SchemaOf[S]().Fields() {
		v, ok := r.fields.Get(f.Name)
		if !ok {
			continue
		}
		frags = append(frags, f.Name+": "+renderValue(f, v))
	}
	if len(frags) == 0 {
		return "(partial.FromRecord {})"
	}
	return "(partial.FromRecord { " + strings.Join(frags, ", ") + " })"
}

func renderValue(f schema.Field, v any) string {
	if f.Type.Kind() == reflect.String {
		return strconv.Quote(reflect.ValueOf(v).String())
	}
	return fmt.Sprintf("%v", v)
}
