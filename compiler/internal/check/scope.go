package check

import "github.com/stormlang/storm/compiler/internal/ir"

// scope binds names to entities. inLoop marks scopes lexically inside a lap
// body, where "stop running" is legal.
type scope struct {
	parent *scope
	names  map[string]ir.Entity
	inLoop bool
}

func newScope(parent *scope, inLoop bool) *scope {
	return &scope{parent: parent, names: map[string]ir.Entity{}, inLoop: inLoop}
}

func (s *scope) lookup(name string) (ir.Entity, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.names[name]; ok {
			return e, true
		}
	}
	return nil, false
}

func (s *scope) define(name string, e ir.Entity) {
	s.names[name] = e
}
