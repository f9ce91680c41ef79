// # internal/stub/resolver.go
package stub

import (
	"fmt"
	"sort"
	"strings"
)

// builtinTypes never need an import.
var builtinTypes = map[string]bool{
	"int":     true,
	"float":   true,
	"bool":    true,
	"str":     true,
	"bytes":   true,
	"unicode": true,
	"tuple":   true,
	"list":    true,
	"set":     true,
	"dict":    true,
	"None":    true,
}

// typingNames is the vocabulary of the typing module as of Python 3.8.
// Pinned here so resolution never depends on runtime introspection.
var typingNames = map[string]bool{
	"AbstractSet": true, "Any": true, "AnyStr": true, "AsyncContextManager": true,
	"AsyncGenerator": true, "AsyncIterable": true, "AsyncIterator": true,
	"Awaitable": true, "ByteString": true, "Callable": true, "ChainMap": true,
	"ClassVar": true, "Collection": true, "Container": true, "ContextManager": true,
	"Coroutine": true, "Counter": true, "DefaultDict": true, "Deque": true,
	"Dict": true, "Final": true, "FrozenSet": true, "Generator": true,
	"Generic": true, "Hashable": true, "IO": true, "ItemsView": true,
	"Iterable": true, "Iterator": true, "KeysView": true, "List": true,
	"Literal": true, "Mapping": true, "MappingView": true, "Match": true,
	"MutableMapping": true, "MutableSequence": true, "MutableSet": true,
	"NamedTuple": true, "NewType": true, "NoReturn": true, "Optional": true,
	"OrderedDict": true, "Pattern": true, "Protocol": true, "Reversible": true,
	"Sequence": true, "Set": true, "Sized": true, "Text": true, "TextIO": true,
	"Tuple": true, "Type": true, "TypedDict": true, "Union": true,
	"ValuesView": true,
}

// ExplicitImport pairs a needed name with the module its source
// imported it from.
type ExplicitImport struct {
	Name   string
	Module string
}

// ImportPlan is the final set of import lines a stub needs, grouped
// and ordered for rendering.
type ImportPlan struct {
	TypingNames []string         // alphabetical
	Explicit    []ExplicitImport // first-occurrence source order
	Modules     []string         // dotted-name prefixes, alphabetical, deduplicated
}

func (p *ImportPlan) Empty() bool {
	return len(p.TypingNames) == 0 && len(p.Explicit) == 0 && len(p.Modules) == 0
}

// ImportedNames is an insertion-ordered mapping of imported name to
// origin module. Re-adding a name keeps its original position but
// updates the module, like the source's last import statement winning.
type ImportedNames struct {
	order   []string
	modules map[string]string
}

func NewImportedNames() *ImportedNames {
	return &ImportedNames{modules: make(map[string]string)}
}

func (n *ImportedNames) Add(name, module string) {
	if _, ok := n.modules[name]; !ok {
		n.order = append(n.order, name)
	}
	n.modules[name] = module
}

func (n *ImportedNames) Has(name string) bool {
	_, ok := n.modules[name]
	return ok
}

// TypeResolver accumulates every type name required by a unit's
// signatures and partitions them into an import plan. One resolver
// serves exactly one source unit.
type TypeResolver struct {
	required map[string]bool
	extra    map[string]bool // config-supplied additions to the typing vocabulary
}

func NewTypeResolver(extraTypingNames []string) *TypeResolver {
	r := &TypeResolver{
		required: make(map[string]bool),
		extra:    make(map[string]bool),
	}
	for _, name := range extraTypingNames {
		r.extra[name] = true
	}
	return r
}

// Register records type names discovered in one signature.
func (r *TypeResolver) Register(names []string) {
	for _, name := range names {
		if builtinTypes[name] {
			continue
		}
		r.required[name] = true
	}
}

// Resolve partitions every registered name into a provenance. Any name
// left without one makes the whole unit fail: the diagnostic carries
// the complete set of offending names.
func (r *TypeResolver) Resolve(locallyDefined map[string]bool, imported *ImportedNames) (*ImportPlan, error) {
	plan := &ImportPlan{}
	modules := make(map[string]bool)
	explicit := make(map[string]bool)
	var unresolved []string

	for name := range r.required {
		switch {
		case builtinTypes[name]:
		case locallyDefined[name]:
		case imported != nil && imported.Has(name):
			explicit[name] = true // collected below in source import order
		case strings.Contains(name, "."):
			parts := strings.Split(name, ".")
			modules[strings.Join(parts[:len(parts)-1], ".")] = true
		case typingNames[name] || r.extra[name]:
			plan.TypingNames = append(plan.TypingNames, name)
		default:
			unresolved = append(unresolved, name)
		}
	}

	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return nil, NewError(CodeUnresolvedType,
			fmt.Sprintf("following types could not be found: %s", strings.Join(unresolved, ", ")))
	}

	sort.Strings(plan.TypingNames)

	if imported != nil {
		for _, name := range imported.order {
			if explicit[name] {
				plan.Explicit = append(plan.Explicit, ExplicitImport{Name: name, Module: imported.modules[name]})
			}
		}
	}

	for module := range modules {
		plan.Modules = append(plan.Modules, module)
	}
	sort.Strings(plan.Modules)

	return plan, nil
}
