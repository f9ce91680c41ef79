package stub

import (
	"reflect"
	"strings"
	"testing"
)

func TestResolveTypingNamesSorted(t *testing.T) {
	r := NewTypeResolver(nil)
	// Discovery order deliberately unsorted.
	r.Register([]string{"Optional", "Dict", "List"})

	plan, err := r.Resolve(nil, NewImportedNames())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(plan.TypingNames, []string{"Dict", "List", "Optional"}) {
		t.Errorf("typing names not sorted: %v", plan.TypingNames)
	}
}

func TestResolveLocallyDefinedDropped(t *testing.T) {
	r := NewTypeResolver(nil)
	r.Register([]string{"MyClass"})

	plan, err := r.Resolve(map[string]bool{"MyClass": true}, NewImportedNames())
	if err != nil {
		t.Fatal(err)
	}
	if !plan.Empty() {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}

func TestResolveExplicitImportsKeepSourceOrder(t *testing.T) {
	imported := NewImportedNames()
	imported.Add("Zeta", "zoo")
	imported.Add("Alpha", "farm")
	imported.Add("Unused", "attic")

	r := NewTypeResolver(nil)
	r.Register([]string{"Alpha", "Zeta"})

	plan, err := r.Resolve(nil, imported)
	if err != nil {
		t.Fatal(err)
	}

	expected := []ExplicitImport{{Name: "Zeta", Module: "zoo"}, {Name: "Alpha", Module: "farm"}}
	if !reflect.DeepEqual(plan.Explicit, expected) {
		t.Errorf("expected %v, got %v", expected, plan.Explicit)
	}
}

func TestResolveDottedModulesSortedDeduplicated(t *testing.T) {
	r := NewTypeResolver(nil)
	r.Register([]string{"r.s.T", "r.s.U", "a.B"})

	plan, err := r.Resolve(nil, NewImportedNames())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(plan.Modules, []string{"a", "r.s"}) {
		t.Errorf("expected [a r.s], got %v", plan.Modules)
	}
}

func TestResolveExtraTypingNames(t *testing.T) {
	r := NewTypeResolver([]string{"Queue"})
	r.Register([]string{"Queue"})

	plan, err := r.Resolve(nil, NewImportedNames())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(plan.TypingNames, []string{"Queue"}) {
		t.Errorf("expected [Queue], got %v", plan.TypingNames)
	}
}

func TestResolveUnresolvedIsFatalAndComplete(t *testing.T) {
	r := NewTypeResolver(nil)
	r.Register([]string{"Ghost", "List", "Phantom"})

	_, err := r.Resolve(nil, NewImportedNames())
	if !IsCode(err, CodeUnresolvedType) {
		t.Fatalf("expected UNRESOLVED_TYPE, got %v", err)
	}
	// The diagnostic reports the whole set at once.
	for _, name := range []string{"Ghost", "Phantom"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("diagnostic missing %q: %s", name, err.Error())
		}
	}
	if strings.Contains(err.Error(), "List") {
		t.Errorf("typing name leaked into diagnostic: %s", err.Error())
	}
}

func TestRegisterIgnoresBuiltins(t *testing.T) {
	r := NewTypeResolver(nil)
	r.Register([]string{"int", "str", "None"})

	plan, err := r.Resolve(nil, NewImportedNames())
	if err != nil {
		t.Fatal(err)
	}
	if !plan.Empty() {
		t.Errorf("builtins must not require imports: %+v", plan)
	}
}

func TestImportedNamesLaterImportWins(t *testing.T) {
	imported := NewImportedNames()
	imported.Add("A", "first")
	imported.Add("B", "other")
	imported.Add("A", "second")

	r := NewTypeResolver(nil)
	r.Register([]string{"A", "B"})

	plan, err := r.Resolve(nil, imported)
	if err != nil {
		t.Fatal(err)
	}
	expected := []ExplicitImport{{Name: "A", Module: "second"}, {Name: "B", Module: "other"}}
	if !reflect.DeepEqual(plan.Explicit, expected) {
		t.Errorf("expected %v, got %v", expected, plan.Explicit)
	}
}
