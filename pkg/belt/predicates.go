package belt

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// IsEmpty reports whether v is nil, Undefined, a typed nil, a zero-length
// slice or array, or (unless allowEmptyString) the empty string. Zero, false
// and empty records are not empty, and neither is a value that fits no kind.
func IsEmpty(v any, allowEmptyString bool) bool {
	k, err := classify(v)
	if err != nil {
		return false
	}
	switch k {
	case KindNull, KindUndefined:
		return true
	case KindString:
		return !allowEmptyString && reflect.ValueOf(v).Len() == 0
	case KindArray:
		return reflect.ValueOf(v).Len() == 0
	}
	return false
}

// ValueFrom returns v unless it is empty, in which case fallback is returned.
// Passing allowBlank as true keeps an empty string.
func ValueFrom[T any](v, fallback T, allowBlank ...bool) T {
	if IsEmpty(v, len(allowBlank) > 0 && allowBlank[0]) {
		return fallback
	}
	return v
}

// Get returns record[key], or Undefined when the key is absent. A key
// holding nil yields nil.
func Get(record map[string]any, key string) any {
	if v, ok := record[key]; ok {
		return v
	}
	return Undefined
}

func is(v any, want Kind) bool {
	k, _ := classify(v)
	return k == want
}

// IsArray reports whether v is a slice or array.
func IsArray(v any) bool { return is(v, KindArray) }

// IsDate reports whether v is a time.Time or non-nil *time.Time.
func IsDate(v any) bool { return is(v, KindDate) }

// IsRegExp reports whether v is a non-nil *regexp.Regexp.
func IsRegExp(v any) bool { return is(v, KindRegExp) }

// IsObject reports whether v is a record: a map, struct or pointer that is
// not a date, pattern or document node.
func IsObject(v any) bool { return is(v, KindPlainRecord) }

// IsSimpleObject reports whether v is a literal-like record: an unnamed
// string-keyed map such as map[string]any or map[string]int. Named map types,
// structs and pointers are not. These are the records Clone duplicates.
func IsSimpleObject(v any) bool {
	return v != nil && isRecordMap(reflect.TypeOf(v))
}

// IsPrimitive reports whether v is a string, number or boolean. nil and
// Undefined are not primitives.
func IsPrimitive(v any) bool {
	switch k, _ := classify(v); k {
	case KindString, KindNumber, KindBoolean:
		return true
	}
	return false
}

// IsFunction reports whether v is a non-nil func.
func IsFunction(v any) bool { return is(v, KindFunction) }

// IsNumber reports whether v is a finite number. NaN and ±Inf are not.
func IsNumber(v any) bool {
	f, ok := numberOf(v)
	return ok && isFinite(f)
}

// IsNumeric reports whether v is a finite number or a string that parses to
// one ("2.34" is numeric, "abc" is not). Unsigned 0x, 0o and 0b integer
// literals count; hex floats such as "0x1p4" and signed prefixed forms do not.
func IsNumeric(v any) bool {
	if f, ok := numberOf(v); ok {
		return isFinite(f)
	}
	s, ok := stringOf(v)
	if !ok {
		return false
	}
	return isNumericString(strings.TrimSpace(s))
}

func isNumericString(s string) bool {
	if base := radixPrefix(s); base != 0 {
		digits := s[2:]
		if digits == "" || strings.ContainsAny(digits, "+-_") {
			return false
		}
		n, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return false
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return isFinite(f)
	}
	if radixPrefix(strings.TrimLeft(s, "+-")) != 0 {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && isFinite(f)
}

// radixPrefix returns the base selected by a leading 0x, 0o or 0b, or 0.
func radixPrefix(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// IsString reports whether v is a string.
func IsString(v any) bool { return is(v, KindString) }

// IsBoolean reports whether v is a bool.
func IsBoolean(v any) bool { return is(v, KindBoolean) }

// IsElement reports whether v is a node whose marker is ElementNode.
// Comments and documents classify as KindElement but are not elements.
func IsElement(v any) bool {
	n, ok := nodeOf(v)
	return ok && n.NodeType() == ElementNode
}

// IsTextNode reports whether v is a text node, whitespace-only or not.
func IsTextNode(v any) bool {
	n, ok := nodeOf(v)
	return ok && n.NodeType() == TextNode
}

// IsDefined reports whether v is anything but Undefined. nil is defined.
func IsDefined(v any) bool {
	_, undefined := v.(UndefinedValue)
	return !undefined
}

type lengther interface {
	Len() int
}

// IsIterable reports whether v has a length and is not a string: slices,
// arrays and values with a Len() int method. Empty slices count.
func IsIterable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := stringOf(v); ok {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	if isNilValue(rv) {
		return false
	}
	_, ok := v.(lengther)
	return ok
}

var msDate = regexp.MustCompile(`\\?/Date\(([-+])?(\d+)(?:[+-]\d{4})?\)\\?/`)

// IsMSDate reports whether v is a string holding the legacy Microsoft JSON
// date encoding, e.g. "/Date(1234567890000)/" or "\/Date(-1000+0100)\/".
func IsMSDate(v any) bool {
	if !is(v, KindString) {
		return false
	}
	s, _ := stringOf(v)
	return msDate.MatchString(s)
}

// numberOf converts a number-kind value to float64.
func numberOf(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), true
		}
		return f, true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// stringOf returns the contents of any string-kinded value, json.Number included.
func stringOf(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
