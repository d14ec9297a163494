package procrt

import "testing"

func TestValueConstructors(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		kind ValueKind
	}{
		{"nil", Nil, KindNil},
		{"bool", BoolValue(true), KindBool},
		{"int", IntValue(7), KindInt},
		{"float", FloatValue(1.5), KindFloat},
		{"string", StringValue("hi"), KindString},
	}
	for _, c := range cases {
		if c.v.Kind != c.kind {
			t.Errorf("%s: Kind = %v, want %v", c.name, c.v.Kind, c.kind)
		}
	}
	if !BoolValue(true).Bool {
		t.Error("BoolValue(true).Bool = false")
	}
	if IntValue(7).Int != 7 {
		t.Error("IntValue(7).Int != 7")
	}
	if FloatValue(1.5).Flt != 1.5 {
		t.Error("FloatValue(1.5).Flt != 1.5")
	}
	if StringValue("hi").Str != "hi" {
		t.Error(`StringValue("hi").Str != "hi"`)
	}
}

func TestCopyValuesIndependence(t *testing.T) {
	src := []Value{IntValue(1), StringValue("a")}
	dup := CopyValues(src)
	dup[0] = IntValue(99)
	if src[0].Int != 1 {
		t.Fatal("CopyValues aliased the source slice")
	}
	if CopyValues(nil) != nil {
		t.Fatal("CopyValues(nil) should return nil")
	}
	if CopyValues([]Value{}) != nil {
		t.Fatal("CopyValues(empty) should return nil")
	}
}

func TestValueKindString(t *testing.T) {
	cases := map[ValueKind]string{
		KindNil:    "nil",
		KindBool:   "boolean",
		KindInt:    "integer",
		KindFloat:  "float",
		KindString: "string",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
	if got := ValueKind(99).String(); got != "unsupported" {
		t.Fatalf("unknown kind stringified to %q, want %q", got, "unsupported")
	}
}
