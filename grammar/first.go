package grammar

import (
	"github.com/nihei9/ffgram/log"
)

// First holds the FIRST set of every symbol and the set of nullable
// non-terminals. Empty derivations are never recorded in a FIRST set.
type First struct {
	set      map[Symbol]*symbolSet
	nullable *symbolSet
}

func newFirst(symTab *SymbolTable, prods *productionSet) *First {
	fst := &First{
		set:      map[Symbol]*symbolSet{},
		nullable: newSymbolSet(),
	}
	for _, tsym := range symTab.terminalSymbols() {
		fst.set[tsym] = newSymbolSet(tsym)
	}
	for _, nsym := range symTab.nonTerminalSymbols() {
		fst.set[nsym] = newSymbolSet()
	}
	for _, prod := range prods.getAll() {
		if prod.isEmpty() {
			fst.nullable.add(prod.lhs)
		}
	}

	return fst
}

func (fst *First) findBySymbol(sym Symbol) *symbolSet {
	return fst.set[sym]
}

func (fst *First) isNullable(sym Symbol) bool {
	return fst.nullable.contains(sym)
}

// find computes the FIRST set of a sequence. It stops at the first symbol that
// is not nullable, and reports whether every symbol of the sequence is
// nullable (true for the empty sequence).
func (fst *First) find(seq []Symbol) (*symbolSet, bool) {
	entry := newSymbolSet()
	for _, sym := range seq {
		entry.merge(fst.findBySymbol(sym))
		if !fst.isNullable(sym) {
			return entry, false
		}
	}
	return entry, true
}

type firstComContext struct {
	prods *productionSet
	first *First
}

func newFirstComContext(symTab *SymbolTable, prods *productionSet) *firstComContext {
	return &firstComContext{
		prods: prods,
		first: newFirst(symTab, prods),
	}
}

func genFirst(symTab *SymbolTable, prods *productionSet) *First {
	cc := newFirstComContext(symTab, prods)
	for pass := 1; ; pass++ {
		more := genFirstPass(cc)
		log.Log("first: pass %v, changed: %v", pass, more)
		if !more {
			break
		}
	}
	return cc.first
}

// genFirstPass visits every production once and reports whether any FIRST set
// or the nullable set grew.
func genFirstPass(cc *firstComContext) bool {
	more := false
	for _, prod := range cc.prods.getAll() {
		if genProdFirstEntry(cc, prod) {
			more = true
		}
	}
	return more
}

func genProdFirstEntry(cc *firstComContext, prod *production) bool {
	fst, nullable := cc.first.find(prod.rhs)
	changed := cc.first.findBySymbol(prod.lhs).merge(fst)
	if nullable && cc.first.nullable.add(prod.lhs) {
		changed = true
	}
	return changed
}
