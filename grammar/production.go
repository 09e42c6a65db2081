package grammar

import (
	"fmt"
)

type ProductionNum uint16

// Production numbers start at 1 so that the zero value means no production.
const (
	productionNumMin = ProductionNum(1)
	productionNumMax = ProductionNum(0xffff)
)

type production struct {
	num    ProductionNum
	lhs    Symbol
	rhs    []Symbol
	rhsLen int
}

func newProduction(lhs Symbol, rhs []Symbol) (*production, error) {
	if lhs.isNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if !lhs.isNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	for _, sym := range rhs {
		if sym.isNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	p := &production{
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}

	return p, nil
}

func (p *production) isEmpty() bool {
	return p.rhsLen <= 0
}

// productionSet keeps productions in declaration order. Identical
// alternatives are kept as separate productions.
type productionSet struct {
	lhs2Prods map[Symbol][]*production
	prods     []*production
	num       ProductionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[Symbol][]*production{},
		num:       productionNumMin,
	}
}

// declare registers a non-terminal so that it has an entry even when it ends
// up with no productions.
func (ps *productionSet) declare(lhs Symbol) {
	if _, ok := ps.lhs2Prods[lhs]; ok {
		return
	}
	ps.lhs2Prods[lhs] = []*production{}
}

func (ps *productionSet) append(prod *production) error {
	if len(ps.prods) >= int(productionNumMax) {
		return fmt.Errorf("the number of productions exceeds the limit; limit: %v", productionNumMax)
	}

	prod.num = ps.num
	ps.num++

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.prods = append(ps.prods, prod)

	return nil
}

func (ps *productionSet) findByLHS(lhs Symbol) ([]*production, bool) {
	if lhs.isNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAll() []*production {
	return ps.prods
}
