package value

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFalsy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Value{}, true},
		{"null", Null(), true},
		{"false", Bool(false), true},
		{"true", Bool(true), false},
		{"zero", Number(0), true},
		{"negative zero", Number(math.Copysign(0, -1)), true},
		{"nan", Number(math.NaN()), true},
		{"number", Number(42), false},
		{"empty string", String(""), true},
		{"string", String("x"), false},
		{"empty map", Map(nil), false},
		{"empty sequence", Sequence(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Falsy(); got != tc.want {
				t.Errorf("Falsy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer", Number(9000), "9000"},
		{"float", Number(1.5), "1.5"},
		{"negative", Number(-3), "-3"},
		{"huge", Number(1e21), "1e+21"},
		{"huge exponent", Number(1e100), "1e+100"},
		{"tiny", Number(1e-7), "1e-7"},
		{"tiny fraction", Number(-1.5e-7), "-1.5e-7"},
		{"smallest plain", Number(0.000001), "0.000001"},
		{"bool", Bool(true), "true"},
		{"string", String("The Fireman"), "The Fireman"},
		{"sequence", Sequence(Number(1), Null(), String("a")), "1,,a"},
		{"map sorted keys", Map(map[string]Value{
			"b": Number(2),
			"a": String("x\"y"),
		}), `{"a":"x\"y","b":2}`},
		{"absent", Value{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGet_NonMapIsAbsent(t *testing.T) {
	if !String("abc").Get("length").IsAbsent() {
		t.Error("Get on a string must be absent")
	}
	if !Sequence(Map(map[string]Value{"a": Number(1)})).Get("a").IsAbsent() {
		t.Error("Get on a sequence must be absent")
	}
	m := Map(map[string]Value{"a": Number(1)})
	if m.Get("a").NumberValue() != 1 {
		t.Errorf("Get(a) = %v, want 1", m.Get("a"))
	}
	if !m.Get("missing").IsAbsent() {
		t.Error("missing key must be absent")
	}
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"name":"The Mage","skills":[{"name":"Magicking","level":42}],"x":null,"ok":false}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindMap {
		t.Fatalf("kind = %s, want map", v.Kind())
	}
	if got := v.Get("name").String(); got != "The Mage" {
		t.Errorf("name = %q", got)
	}
	skills := v.Get("skills").Elements()
	if len(skills) != 1 {
		t.Fatalf("skills len = %d, want 1", len(skills))
	}
	if got := skills[0].Get("level").NumberValue(); got != 42 {
		t.Errorf("level = %v, want 42", got)
	}
	if v.Get("x").Kind() != KindNull {
		t.Errorf("x kind = %s, want null", v.Get("x").Kind())
	}
	if v.Get("ok").Kind() != KindBool || v.Get("ok").BoolValue() {
		t.Error("ok must be bool false")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"name":`)); err == nil {
		t.Fatal("expected error for truncated json")
	}
}

type person struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Level int      `json:"level"`
}

func TestFromAny(t *testing.T) {
	v := FromAny(map[string]any{
		"name":   "Wizard",
		"level":  41,
		"ratio":  json.Number("0.5"),
		"tags":   []string{"a", "b"},
		"nested": map[any]any{1: "one"},
		"none":   nil,
	})
	if v.Get("name").String() != "Wizard" {
		t.Errorf("name = %q", v.Get("name").String())
	}
	if v.Get("level").NumberValue() != 41 {
		t.Errorf("level = %v", v.Get("level").NumberValue())
	}
	if v.Get("ratio").NumberValue() != 0.5 {
		t.Errorf("ratio = %v", v.Get("ratio").NumberValue())
	}
	if len(v.Get("tags").Elements()) != 2 {
		t.Errorf("tags = %v", v.Get("tags"))
	}
	if v.Get("nested").Get("1").String() != "one" {
		t.Errorf("nested.1 = %q", v.Get("nested").Get("1").String())
	}
	if v.Get("none").Kind() != KindNull {
		t.Errorf("none kind = %s", v.Get("none").Kind())
	}
}

func TestFromAny_Struct(t *testing.T) {
	v := FromAny(person{Name: "Developer", Tags: []string{"typing"}, Level: 9000})
	if v.Get("name").String() != "Developer" {
		t.Errorf("name = %q", v.Get("name").String())
	}
	if v.Get("level").String() != "9000" {
		t.Errorf("level = %q", v.Get("level").String())
	}
	if v.Get("tags").Elements()[0].String() != "typing" {
		t.Errorf("tags = %v", v.Get("tags"))
	}
}

func TestAny_RoundTrip(t *testing.T) {
	in := map[string]any{"a": []any{1.0, "x", true, nil}}
	out, ok := FromAny(in).Any().(map[string]any)
	if !ok {
		t.Fatal("expected map")
	}
	items, ok := out["a"].([]any)
	if !ok || len(items) != 4 {
		t.Fatalf("a = %#v", out["a"])
	}
	if items[0] != 1.0 || items[1] != "x" || items[2] != true || items[3] != nil {
		t.Errorf("items = %#v", items)
	}
}

func TestMarshalJSON(t *testing.T) {
	v := Map(map[string]Value{
		"name":   String("The Mage"),
		"skills": Sequence(Map(map[string]Value{"level": Number(42)}), Null()),
		"nan":    Number(math.NaN()),
	})
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"name":"The Mage","nan":null,"skills":[{"level":42},null]}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}
