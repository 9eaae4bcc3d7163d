package belt

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"time"

	"golang.org/x/net/html"

	"utilitybelt/internal/logging"
)

// Kind is the classification tag produced for any value.
type Kind int

// Kinds in classification precedence order.
const (
	KindUndefined Kind = iota
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindDate
	KindRegExp
	KindFunction
	KindElement
	KindTextNode
	KindWhitespaceTextNode
	KindPlainRecord
)

var kindNames = [...]string{
	KindUndefined:          "undefined",
	KindNull:               "null",
	KindString:             "string",
	KindNumber:             "number",
	KindBoolean:            "boolean",
	KindArray:              "array",
	KindDate:               "date",
	KindRegExp:             "regexp",
	KindFunction:           "function",
	KindElement:            "element",
	KindTextNode:           "text-node",
	KindWhitespaceTextNode: "whitespace-text-node",
	KindPlainRecord:        "plain-record",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText renders the kind name so it reads naturally in YAML and JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", text)
}

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

func (UndefinedValue) String() string { return "undefined" }

// Undefined stands for "no value at all", as opposed to nil which is an
// explicit null. Get returns it for missing record keys.
var Undefined = UndefinedValue{}

// Classify maps v to exactly one Kind. It never fails: values that fit no
// kind are logged and reported as KindUndefined.
func Classify(v any) Kind {
	k, err := classify(v)
	if err != nil {
		logging.ClassifyWarn("Failed to determine the kind of the specified value (%T). This is most likely a bug.", v)
	}
	return k
}

// ClassifyStrict is Classify with the fallback surfaced as an error wrapping
// ErrUnclassifiable.
func ClassifyStrict(v any) (Kind, error) {
	k, err := classify(v)
	if err != nil {
		logging.ClassifyDebug("Strict classification failed: %v", err)
	}
	return k, err
}

// classify is the silent core shared by Classify and the predicates.
// First match wins.
func classify(v any) (Kind, error) {
	switch v.(type) {
	case nil:
		return KindNull, nil
	case UndefinedValue:
		return KindUndefined, nil
	case json.Number:
		return KindNumber, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Bool:
		return KindBoolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber, nil
	}

	if isNilValue(rv) {
		return KindNull, nil
	}

	switch v.(type) {
	case time.Time, *time.Time:
		return KindDate, nil
	case *regexp.Regexp:
		return KindRegExp, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray, nil
	case reflect.Func:
		return KindFunction, nil
	}

	if n, ok := nodeOf(v); ok {
		return nodeKind(n), nil
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Pointer:
		return KindPlainRecord, nil
	}

	return KindUndefined, fmt.Errorf("%w: %T", ErrUnclassifiable, v)
}

func nodeKind(n Node) Kind {
	if n.NodeType() != TextNode {
		return KindElement
	}
	if nonWhitespace.MatchString(n.NodeValue()) {
		return KindTextNode
	}
	return KindWhitespaceTextNode
}

var nonWhitespace = regexp.MustCompile(`\S`)

// isNilValue reports whether rv holds a nil of a nilable reference kind.
// Nil slices and maps are not reported: Go treats them as empty, not absent.
func isNilValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// nodeOf adapts host node values to Node. Typed nil nodes are rejected.
func nodeOf(v any) (Node, bool) {
	switch n := v.(type) {
	case *html.Node:
		if n == nil {
			return nil, false
		}
		return htmlNode{n}, true
	case Node:
		if isNilValue(reflect.ValueOf(v)) {
			return nil, false
		}
		return n, true
	}
	return nil, false
}
