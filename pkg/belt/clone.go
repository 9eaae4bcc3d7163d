package belt

import (
	"reflect"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/net/html"

	"utilitybelt/internal/logging"
)

// Cloner produces structural duplicates. The zero value is ready to use and
// copies every record key recursively.
//
// A Cloner is immutable once built and safe for concurrent use.
type Cloner struct {
	byReference []string
}

// ClonerOption configures a Cloner.
type ClonerOption func(*Cloner)

// WithByReferenceKeys names record keys whose values are copied onto the
// duplicate by reference, after the recursive pass has run.
func WithByReferenceKeys(keys ...string) ClonerOption {
	return func(c *Cloner) {
		for _, k := range keys {
			if !slices.Contains(c.byReference, k) {
				c.byReference = append(c.byReference, k)
			}
		}
	}
}

// NewCloner builds a Cloner.
func NewCloner(opts ...ClonerOption) *Cloner {
	c := &Cloner{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ByReferenceKeys returns a copy of the configured by-reference keys.
func (c *Cloner) ByReferenceKeys() []string {
	return slices.Clone(c.byReference)
}

// visitKey identifies a map or slice backing store already being cloned.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
	cap int
}

// Clone returns a duplicate of v that shares no mutable slice, array, record
// or date state with it. Rules, first match wins:
//
//   - nil and Undefined come back as-is
//   - *html.Node and NodeCloner values are deep-copied by the node itself
//   - time.Time and *time.Time become a new value for the same instant
//   - slices and arrays become a new sequence of recursively cloned elements
//   - unnamed string-keyed maps (map[string]any, map[string]int, ...) become
//     a new map of recursively cloned values
//   - everything else (scalars, funcs, patterns, structs, named maps,
//     pointers, plain nodes) is returned by reference
//
// Self-referential maps and slices clone to a copy with the same shape of
// self-reference. A slice that appears more than once is cloned once and the
// copy is shared. Slices are told apart by element type, start, length and
// capacity, so overlapping views of one array with different bounds clone
// to independent copies.
func (c *Cloner) Clone(v any) any {
	return c.clone(v, make(map[visitKey]reflect.Value))
}

func (c *Cloner) clone(v any, seen map[visitKey]reflect.Value) any {
	if v == nil {
		return nil
	}

	switch x := v.(type) {
	case UndefinedValue:
		return v
	case *html.Node:
		if x == nil {
			return v
		}
		return cloneHTML(x)
	case NodeCloner:
		if isNilValue(reflect.ValueOf(v)) {
			return v
		}
		return x.CloneNode(true)
	case time.Time:
		// Round(0) yields a fresh value for the same instant without the
		// monotonic reading.
		return x.Round(0)
	case *time.Time:
		if x == nil {
			return v
		}
		t := x.Round(0)
		return &t
	}

	k, err := classify(v)
	if err != nil {
		logging.CloneWarn("Cannot clone value of type %T, returning it by reference: %v", v, err)
		return v
	}

	switch k {
	case KindArray:
		return c.cloneSequence(reflect.ValueOf(v), seen).Interface()
	case KindPlainRecord:
		if rv := reflect.ValueOf(v); isRecordMap(rv.Type()) {
			return c.cloneRecord(rv, seen).Interface()
		}
	}
	return v
}

// isRecordMap reports whether t is a map literal type keyed by strings.
// Named map types keep their identity and are shared.
func isRecordMap(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Name() == "" && t.Key().Kind() == reflect.String
}

func (c *Cloner) cloneSequence(rv reflect.Value, seen map[visitKey]reflect.Value) reflect.Value {
	var out reflect.Value
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		n := rv.Len()
		if n == 0 {
			return reflect.MakeSlice(rv.Type(), 0, 0)
		}
		key := visitKey{typ: rv.Type(), ptr: rv.Pointer(), len: n, cap: rv.Cap()}
		if prev, ok := seen[key]; ok {
			logging.CloneDebug("Slice %s already cloned, reusing the copy", rv.Type())
			return prev
		}
		out = reflect.MakeSlice(rv.Type(), n, n)
		seen[key] = out
	default:
		out = reflect.New(rv.Type()).Elem()
	}

	for i := range rv.Len() {
		c.assignClone(out.Index(i), rv.Index(i), seen)
	}
	return out
}

// assignClone stores a clone of src into dst, keeping src when the clone
// does not fit dst's static type.
func (c *Cloner) assignClone(dst, src reflect.Value, seen map[visitKey]reflect.Value) {
	cloned := c.clone(src.Interface(), seen)
	if cloned == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	cv := reflect.ValueOf(cloned)
	if cv.Type().AssignableTo(dst.Type()) {
		dst.Set(cv)
		return
	}
	dst.Set(src)
}

func (c *Cloner) cloneRecord(rv reflect.Value, seen map[visitKey]reflect.Value) reflect.Value {
	if rv.IsNil() {
		return rv
	}
	key := visitKey{typ: rv.Type(), ptr: rv.Pointer()}
	if prev, ok := seen[key]; ok {
		logging.CloneDebug("Record %s already cloned, reusing the copy", rv.Type())
		return prev
	}

	out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
	seen[key] = out
	elem := rv.Type().Elem()
	for iter := rv.MapRange(); iter.Next(); {
		v := reflect.New(elem).Elem()
		c.assignClone(v, iter.Value(), seen)
		out.SetMapIndex(iter.Key(), v)
	}
	for _, k := range c.byReference {
		kv := reflect.ValueOf(k).Convert(rv.Type().Key())
		if v := rv.MapIndex(kv); v.IsValid() {
			out.SetMapIndex(kv, v)
		}
	}
	return out
}

var defaultCloner atomic.Pointer[Cloner]

func init() {
	defaultCloner.Store(NewCloner())
}

// SetByReferenceKeys replaces the by-reference key list used by Clone.
// Calling it with no keys restores the default of none.
func SetByReferenceKeys(keys ...string) {
	defaultCloner.Store(NewCloner(WithByReferenceKeys(keys...)))
}

// ByReferenceKeys returns the key list used by Clone.
func ByReferenceKeys() []string {
	return defaultCloner.Load().ByReferenceKeys()
}

// Clone duplicates v with the process-wide default Cloner.
func Clone(v any) any {
	return defaultCloner.Load().Clone(v)
}

// CloneOf is Clone for callers that know the static type.
func CloneOf[T any](v T) T {
	if out, ok := Clone(v).(T); ok {
		return out
	}
	return v
}
