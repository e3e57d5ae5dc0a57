// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOf(t *testing.T) {
	t.Parallel()

	got := Of(map[string]any{
		"s":    "text",
		"n":    int64(3),
		"list": []any{"a", map[string]any{"k": "v"}},
		"strs": []string{"x"},
		"env":  map[string]string{"A": "1"},
		"nil":  nil,
	})

	want := Mapping(map[string]Value{
		"s":    String("text"),
		"n":    Opaque(int64(3)),
		"list": Sequence(String("a"), Mapping(map[string]Value{"k": String("v")})),
		"strs": Strings("x"),
		"env":  Mapping(map[string]Value{"A": String("1")}),
		"nil":  Opaque(nil),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Of() (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(want, Of(want)); diff != "" {
		t.Errorf("Of(Value) should be identity (-want +got):\n%s", diff)
	}
}

func TestValue_Any(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"s":    "text",
		"list": []any{"a", 2},
		"m":    map[string]any{"k": true},
	}
	if diff := cmp.Diff(in, Of(in).Any()); diff != "" {
		t.Errorf("Any() (-want +got):\n%s", diff)
	}
}

func TestValue_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("abc"), "abc"},
		{"int", Opaque(42), "42"},
		{"float", Opaque(1.5), "1.5"},
		{"bool", Opaque(false), "false"},
		{"nil", Opaque(nil), ""},
		{"sequence", Sequence(String("a"), Opaque(1), Strings("b", "c")), "a 1 b c"},
		{"mapping", Mapping(map[string]Value{"b": String("2"), "a": Opaque(1)}), "a=1 b=2"},
		{"empty sequence", Strings(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.v.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Bool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v      Value
		want   bool
		wantOK bool
	}{
		{Opaque(true), true, true},
		{Opaque(false), false, true},
		{String("True"), true, true},
		{String("yes"), true, true},
		{String("0"), false, true},
		{String(""), false, true},
		{String("maybe"), false, false},
		{Opaque(1), false, false},
		{Strings("true"), false, false},
	}
	for _, tt := range tests {
		got, ok := tt.v.Bool()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%#v.Bool() = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	if !Opaque(5).Equal(Opaque(5)) {
		t.Error("equal opaques reported unequal")
	}
	if Opaque(5).Equal(Opaque(int64(5))) {
		t.Error("different scalar types reported equal")
	}
	if String("5").Equal(Opaque(5)) {
		t.Error("different kinds reported equal")
	}
	if Opaque([]int{1}).Equal(Opaque([]int{1})) {
		t.Error("incomparable opaques should never be equal")
	}
	if !Strings("a", "b").Equal(Sequence(String("a"), String("b"))) {
		t.Error("equal sequences reported unequal")
	}
}

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	if _, ok := Opaque(1).Str(); ok {
		t.Error("Str() on opaque should fail")
	}
	if _, ok := String("x").Map(); ok {
		t.Error("Map() on string should fail")
	}
	if _, ok := String("x").Items(); ok {
		t.Error("Items() on string should fail")
	}
	if _, ok := String("x").Raw(); ok {
		t.Error("Raw() on string should fail")
	}
	if _, ok := Sequence(String("a"), Opaque(1)).StringSlice(); ok {
		t.Error("StringSlice() with an opaque element should fail")
	}
	if String("abc").Len() != 0 {
		t.Error("Len() of a string should be 0")
	}

	m := Mapping(map[string]Value{"a": String("1")})
	entries, _ := m.Map()
	entries["b"] = String("2")
	if m.Len() != 1 {
		t.Error("Map() must return a copy")
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for k, want := range map[Kind]string{
		KindOpaque:   "opaque",
		KindString:   "string",
		KindMapping:  "mapping",
		KindSequence: "sequence",
		Kind(9):      "kind(9)",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
