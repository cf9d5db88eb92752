// Package value models host records as a tagged variant so that field
// projection works without reflection.
package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by ParseJSON for malformed input.
var ErrInvalidJSON = errors.New("invalid json")

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds. The zero Value is KindAbsent.
const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an immutable record node: Null, Bool, Number, String, Sequence or Map.
// The zero value represents a missing field.
type Value struct {
	kind   Kind
	b      bool
	num    float64
	str    string
	seq    []Value
	fields map[string]Value
}

// Null returns an explicit null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Sequence wraps an ordered list of values.
func Sequence(items ...Value) Value { return Value{kind: KindSequence, seq: items} }

// Map wraps named fields.
func Map(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMap, fields: fields}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v stands for a missing field.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Get returns the named field of a map, or an absent value for any other
// kind or a missing key.
func (v Value) Get(key string) Value {
	if v.kind != KindMap {
		return Value{}
	}
	return v.fields[key]
}

// Elements returns the items of a sequence, nil otherwise.
func (v Value) Elements() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// BoolValue returns the boolean payload (false for other kinds).
func (v Value) BoolValue() bool { return v.kind == KindBool && v.b }

// NumberValue returns the numeric payload (0 for other kinds).
func (v Value) NumberValue() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Falsy reports whether v belongs to the excluded set: absent, null, false,
// numeric zero (or NaN) and the empty string. Empty maps and sequences are
// not falsy.
func (v Value) Falsy() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return true
	case KindBool:
		return !v.b
	case KindNumber:
		return v.num == 0 || math.IsNaN(v.num)
	case KindString:
		return v.str == ""
	default:
		return false
	}
}

// String renders v the way it is searched: strings verbatim, numbers in
// shortest decimal form, sequences comma-joined and maps as compact JSON with
// sorted keys.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindString:
		return v.str
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			if item.kind == KindNull || item.kind == KindAbsent {
				continue
			}
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindMap:
		var sb strings.Builder
		writeJSON(&sb, v)
		return sb.String()
	default:
		return ""
	}
}

// Any converts v back into plain Go values (map[string]any, []any, float64,
// string, bool, nil).
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Any()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for k, item := range v.fields {
			out[k] = item.Any()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as JSON. Absent values and non-finite numbers encode
// as null; map keys are sorted.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	writeJSON(&sb, v)
	return []byte(sb.String()), nil
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		// Exponent without zero padding: 1e-7, not 1e-07.
		s := strconv.FormatFloat(f, 'g', -1, 64)
		mant, exp, ok := strings.Cut(s, "e")
		if !ok {
			return s
		}
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeJSON(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			sb.WriteString("null")
			return
		}
		sb.WriteString(formatNumber(v.num))
	case KindString:
		writeJSONString(sb, v.str)
	case KindSequence:
		sb.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSON(sb, item)
		}
		sb.WriteByte(']')
	case KindMap:
		keys := make([]string, 0, len(v.fields))
		for k := range v.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, k)
			sb.WriteByte(':')
			writeJSON(sb, v.fields[k])
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	b, _ := json.Marshal(s) //nolint:errchkjson // strings always marshal
	sb.Write(b)
}

// ParseJSON decodes a JSON document into a Value, keeping numbers as float64.
func ParseJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		if !r.Exists() {
			return Value{}
		}
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			arr := r.Array()
			items := make([]Value, len(arr))
			for i, item := range arr {
				items[i] = fromResult(item)
			}
			return Sequence(items...)
		}
		fields := make(map[string]Value)
		r.ForEach(func(k, item gjson.Result) bool {
			fields[k.Str] = fromResult(item)
			return true
		})
		return Map(fields)
	default:
		return Value{}
	}
}

// FromAny converts decoded Go data (as produced by encoding/json, yaml.v3 or
// hand-built literals) into a Value. Types it does not know are round-tripped
// through encoding/json.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}
		return Number(f)
	case json.RawMessage:
		v, err := ParseJSON(t)
		if err != nil {
			return Value{}
		}
		return v
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Sequence(items...)
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = String(item)
		}
		return Sequence(items...)
	case []map[string]any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Sequence(items...)
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = FromAny(item)
		}
		return Map(fields)
	case map[string]string:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = String(item)
		}
		return Map(fields)
	case map[any]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[fmt.Sprint(k)] = FromAny(item)
		}
		return Map(fields)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return String(fmt.Sprint(t))
		}
		v, err := ParseJSON(data)
		if err != nil {
			return String(fmt.Sprint(t))
		}
		return v
	}
}
