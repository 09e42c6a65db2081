package grammar

// Report is a serializable snapshot of a solved grammar.
type Report struct {
	Start         string              `json:"start" yaml:"start"`
	OriginalStart string              `json:"original_start" yaml:"original_start"`
	Accept        string              `json:"accept" yaml:"accept"`
	Terminals     []string            `json:"terminals" yaml:"terminals"`
	NonTerminals  []string            `json:"non_terminals" yaml:"non_terminals"`
	Productions   []*ProductionReport `json:"productions" yaml:"productions"`
	Nullable      []string            `json:"nullable" yaml:"nullable"`
	First         []*SetReport        `json:"first" yaml:"first"`
	Follow        []*SetReport        `json:"follow" yaml:"follow"`
}

type ProductionReport struct {
	Num int      `json:"num" yaml:"num"`
	LHS string   `json:"lhs" yaml:"lhs"`
	RHS []string `json:"rhs" yaml:"rhs"`
}

// SetReport is the FIRST or FOLLOW set of one non-terminal.
type SetReport struct {
	Symbol   string   `json:"symbol" yaml:"symbol"`
	Symbols  []string `json:"symbols" yaml:"symbols"`
	Nullable bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

func GenReport(gram *Grammar) *Report {
	r := &Report{
		Start:         gram.StartSymbol(),
		OriginalStart: gram.OriginalStartSymbol(),
		Accept:        gram.AcceptSymbol(),
		Terminals:     gram.Terminals(),
		NonTerminals:  gram.NonTerminals(),
		Nullable:      gram.Nullable(),
	}

	for _, prod := range gram.prods.getAll() {
		r.Productions = append(r.Productions, &ProductionReport{
			Num: int(prod.num),
			LHS: gram.toText(prod.lhs),
			RHS: gram.toTexts(prod.rhs),
		})
	}

	for _, nsym := range gram.symTab.nonTerminalSymbols() {
		text := gram.toText(nsym)
		r.First = append(r.First, &SetReport{
			Symbol:   text,
			Symbols:  gram.toTexts(gram.first.findBySymbol(nsym).symbols()),
			Nullable: gram.first.isNullable(nsym),
		})
		r.Follow = append(r.Follow, &SetReport{
			Symbol:  text,
			Symbols: gram.toTexts(gram.follow.findBySymbol(nsym).symbols()),
		})
	}

	return r
}
