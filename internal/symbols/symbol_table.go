package symbols

import (
	"github.com/funvibe/gwn/internal/typesystem"
)

// Symbol is a single name binding carrying its type scheme.
type Symbol struct {
	Name string
	Type typesystem.Type // a TForall for generalized bindings, a plain Type otherwise
}

// SymbolTable maps identifiers to type schemes. Tables chain through outer
// scopes; extension creates a new enclosed table and never mutates the parent,
// so closures can hold references to a frozen scope.
type SymbolTable struct {
	store map[string]Symbol
	outer *SymbolTable
}

func New() *SymbolTable {
	return &SymbolTable{store: make(map[string]Symbol)}
}

func NewEnclosed(outer *SymbolTable) *SymbolTable {
	table := New()
	table.outer = outer
	return table
}

// Define binds name to a scheme in this scope, shadowing any outer binding.
func (t *SymbolTable) Define(name string, typ typesystem.Type) Symbol {
	sym := Symbol{Name: name, Type: typ}
	t.store[name] = sym
	return sym
}

// Resolve looks name up through the scope chain.
func (t *SymbolTable) Resolve(name string) (Symbol, bool) {
	sym, ok := t.store[name]
	if !ok && t.outer != nil {
		return t.outer.Resolve(name)
	}
	return sym, ok
}

// All returns the symbols defined in this scope only.
func (t *SymbolTable) All() []Symbol {
	symbols := make([]Symbol, 0, len(t.store))
	for _, sym := range t.store {
		symbols = append(symbols, sym)
	}
	return symbols
}

func (t *SymbolTable) Parent() *SymbolTable {
	return t.outer
}
