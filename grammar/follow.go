package grammar

import (
	"github.com/nihei9/ffgram/log"
)

// Follow holds the FOLLOW set of every non-terminal. The end-of-input symbol
// is an ordinary member of these sets.
type Follow struct {
	set map[Symbol]*symbolSet
}

func newFollow(symTab *SymbolTable, start, eof Symbol) *Follow {
	flw := &Follow{
		set: map[Symbol]*symbolSet{},
	}
	for _, nsym := range symTab.nonTerminalSymbols() {
		flw.set[nsym] = newSymbolSet()
	}
	flw.set[start].add(eof)
	return flw
}

func (flw *Follow) findBySymbol(sym Symbol) *symbolSet {
	return flw.set[sym]
}

type followComContext struct {
	prods  *productionSet
	first  *First
	follow *Follow
}

func newFollowComContext(symTab *SymbolTable, prods *productionSet, first *First, start, eof Symbol) *followComContext {
	return &followComContext{
		prods:  prods,
		first:  first,
		follow: newFollow(symTab, start, eof),
	}
}

// genFollow requires a converged FIRST set.
func genFollow(symTab *SymbolTable, prods *productionSet, first *First, start, eof Symbol) *Follow {
	cc := newFollowComContext(symTab, prods, first, start, eof)
	for pass := 1; ; pass++ {
		more := genFollowPass(cc)
		log.Log("follow: pass %v, changed: %v", pass, more)
		if !more {
			break
		}
	}
	return cc.follow
}

func genFollowPass(cc *followComContext) bool {
	more := false
	for _, prod := range cc.prods.getAll() {
		if genProdFollowEntries(cc, prod) {
			more = true
		}
	}
	return more
}

// genProdFollowEntries spreads what can follow each non-terminal of a
// production body: the FIRST set of the rest of the body and, when the rest
// is nullable, the FOLLOW set of the LHS.
func genProdFollowEntries(cc *followComContext, prod *production) bool {
	changed := false
	for i, sym := range prod.rhs {
		if !sym.isNonTerminal() {
			continue
		}
		e := cc.follow.findBySymbol(sym)

		fst, nullable := cc.first.find(prod.rhs[i+1:])
		if e.merge(fst) {
			changed = true
		}
		if nullable {
			if e.merge(cc.follow.findBySymbol(prod.lhs)) {
				changed = true
			}
		}
	}
	return changed
}
