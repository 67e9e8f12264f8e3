package infer

import "github.com/adept-lang/adeptcore/internal/ast"

// Scope is a stack of lexical-scope frames. Lookup walks the stack
// top-down (spec.md §4.3 "Variable scoping"; SPEC_FULL.md's design note
// replaces the original's parent-pointer linked list with this stack to
// sidestep lifetime entanglement between frames and the AST they
// describe).
type Scope struct {
	frames []map[string]*ast.VarDecl
}

// NewScope returns a scope with a single root frame.
func NewScope() *Scope {
	return &Scope{frames: []map[string]*ast.VarDecl{{}}}
}

// Push opens a new nested frame.
func (s *Scope) Push() {
	s.frames = append(s.frames, map[string]*ast.VarDecl{})
}

// Pop closes the innermost frame.
func (s *Scope) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Declare binds name within the innermost frame.
func (s *Scope) Declare(v *ast.VarDecl) {
	s.frames[len(s.frames)-1][v.Name] = v
}

// Lookup walks the frame stack top-down (innermost scope first, then
// outward through each parent) looking for name.
func (s *Scope) Lookup(name string) (*ast.VarDecl, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Suggest computes the nearest-name suggestion for an unresolved
// identifier: the nearest name by edit distance "across the scope and
// its parent" (spec.md §4.3) — in this stack model, the innermost frame
// plus the one directly enclosing it.
func (s *Scope) Suggest(name string) (string, bool) {
	var candidates []string
	n := len(s.frames)
	for i := n - 1; i >= 0 && i >= n-2; i-- {
		for k := range s.frames[i] {
			candidates = append(candidates, k)
		}
	}
	return nearestName(name, candidates)
}
