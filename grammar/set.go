package grammar

import (
	"github.com/tidwall/btree"
)

// symbolSet is an ordered set of symbols. Iteration follows symbol order, so
// terminals come out in registration order with the end-of-input symbol last.
type symbolSet struct {
	set btree.Set[Symbol]
}

func newSymbolSet(syms ...Symbol) *symbolSet {
	s := &symbolSet{}
	for _, sym := range syms {
		s.add(sym)
	}
	return s
}

func (s *symbolSet) add(sym Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Insert(sym)
	return true
}

// merge adds every symbol of t to s and reports whether s grew.
func (s *symbolSet) merge(t *symbolSet) bool {
	if t == nil || t == s {
		return false
	}
	changed := false
	t.set.Scan(func(sym Symbol) bool {
		if s.add(sym) {
			changed = true
		}
		return true
	})
	return changed
}

func (s *symbolSet) contains(sym Symbol) bool {
	return s.set.Contains(sym)
}

func (s *symbolSet) len() int {
	return s.set.Len()
}

func (s *symbolSet) symbols() []Symbol {
	syms := make([]Symbol, 0, s.set.Len())
	s.set.Scan(func(sym Symbol) bool {
		syms = append(syms, sym)
		return true
	})
	return syms
}
