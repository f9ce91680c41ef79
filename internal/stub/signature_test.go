package stub

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseSignature(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		paramTypes []string
		returnType string
	}{
		{"no params", "() -> None", []string{}, "None"},
		{"one builtin", "(int) -> None", []string{"int"}, "None"},
		{"two builtins", "(int, str) -> bool", []string{"int", "str"}, "bool"},
		{"composite keeps internal commas", "(List[int], Dict[str, int]) -> None",
			[]string{"List[int]", "Dict[str, int]"}, "None"},
		{"nested composite", "(Dict[str, Dict[str, int]]) -> int",
			[]string{"Dict[str, Dict[str, int]]"}, "int"},
		{"dotted return", "() -> r.s.T", []string{}, "r.s.T"},
		{"callable param", "(Callable[[int], str], int) -> str",
			[]string{"Callable[[int], str]", "int"}, "str"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sig, err := ParseSignature(c.raw)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(sig.ParamTypes, c.paramTypes) {
				t.Errorf("param types: expected %v, got %v", c.paramTypes, sig.ParamTypes)
			}
			if sig.ReturnType != c.returnType {
				t.Errorf("return type: expected %q, got %q", c.returnType, sig.ReturnType)
			}
		})
	}
}

func TestParseSignatureMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing arrow", "(int, str)"},
		{"no parens", "int -> str"},
		{"unclosed paren", "(int -> str"},
		{"unbalanced bracket", "(Dict[str) -> None"},
		{"stray closing bracket", "(int], str) -> None"},
		{"double arrow", "(int) -> str -> bool"},
		{"empty return type", "(int) -> "},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseSignature(c.raw); !IsCode(err, CodeMalformedSignature) {
				t.Errorf("expected MALFORMED_SIGNATURE for %q, got %v", c.raw, err)
			}
		})
	}
}

// A rendered signature must parse back to the same parameter list and
// return type.
func TestParseSignatureRoundTrip(t *testing.T) {
	raws := []string{
		"() -> None",
		"(int, str) -> bool",
		"(List[int], Dict[str, int]) -> Optional[str]",
		"(Dict[str, Dict[str, int]], x.y.Z) -> r.s.T",
	}

	for _, raw := range raws {
		sig, err := ParseSignature(raw)
		if err != nil {
			t.Fatal(err)
		}
		rendered := "(" + strings.Join(sig.ParamTypes, ", ") + ") -> " + sig.ReturnType
		again, err := ParseSignature(rendered)
		if err != nil {
			t.Fatalf("re-parse of %q: %v", rendered, err)
		}
		if !reflect.DeepEqual(again.ParamTypes, sig.ParamTypes) || again.ReturnType != sig.ReturnType {
			t.Errorf("round trip changed %q: %v %q vs %v %q",
				raw, sig.ParamTypes, sig.ReturnType, again.ParamTypes, again.ReturnType)
		}
	}
}

func TestSplitParamTypesTokenCount(t *testing.T) {
	cases := []struct {
		defs  string
		count int
	}{
		{"", 0},
		{"int", 1},
		{"int, str", 2},
		{"List[int], Dict[str, int]", 2},
		{"Dict[str, Dict[str, Tuple[int, int]]], int, Set[str]", 3},
	}

	for _, c := range cases {
		types, err := splitParamTypes(c.defs)
		if err != nil {
			t.Fatal(err)
		}
		if len(types) != c.count {
			t.Errorf("%q: expected %d tokens, got %d (%v)", c.defs, c.count, len(types), types)
		}
	}
}

func TestTypeNames(t *testing.T) {
	names := TypeNames("(List[int], x.y.Z, MyType) -> Optional[MyType]")
	expected := []string{"List", "x.y.Z", "MyType", "Optional"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected %v, got %v", expected, names)
	}
}
