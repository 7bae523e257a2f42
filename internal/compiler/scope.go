package compiler

import "github.com/vasyharan/dravid/internal/ir"

// Scope maps identifier names to IR value handles. Lookup of an unknown
// name yields (nil, false); declaring the same name twice within one
// scope is last-write-wins.
type Scope struct {
	values map[string]ir.Value
}

func newScope() *Scope {
	return &Scope{values: make(map[string]ir.Value)}
}

// Bind records name -> value in this scope, overwriting any prior
// binding for the same name.
func (s *Scope) Bind(name string, value ir.Value) {
	s.values[name] = value
}

// Lookup returns the value bound to name in this scope, if any.
func (s *Scope) Lookup(name string) (ir.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// scopeStack is a stack of Scope frames. Nested functions are not part of
// the grammar, so in practice the stack never exceeds depth one — it is
// kept as a stack (rather than flattened to a single map) to allow future
// `let`-block scoping without a representation change, per spec §9.
type scopeStack struct {
	frames []*Scope
}

// Push opens a new scope and makes it the lookup target.
func (s *scopeStack) Push() *Scope {
	scope := newScope()
	s.frames = append(s.frames, scope)
	return scope
}

// Pop closes the topmost scope.
func (s *scopeStack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the current lookup target, or nil if no scope is open.
func (s *scopeStack) Top() *Scope {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}
