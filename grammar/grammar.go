package grammar

import (
	"fmt"
	"io"

	"github.com/nihei9/ffgram/log"
	"github.com/nihei9/ffgram/parser"
)

const (
	// StartSymbolText names the augmented start symbol.
	StartSymbolText = "$accept"
	// EOFSymbolText names the end-of-input symbol.
	EOFSymbolText = "$end"
)

// Grammar is an augmented grammar together with its FIRST and FOLLOW sets. It
// is never modified after construction and is safe for concurrent reads.
type Grammar struct {
	symTab        *SymbolTable
	prods         *productionSet
	start         Symbol
	originalStart Symbol
	eof           Symbol
	first         *First
	follow        *Follow
}

// NewGrammar reads a grammar source and solves it.
func NewGrammar(src io.Reader) (*Grammar, error) {
	psr, err := parser.NewParser(src)
	if err != nil {
		return nil, err
	}
	ast, err := psr.Parse()
	if err != nil {
		return nil, err
	}
	return GenGrammar(ast)
}

// GenGrammar builds the augmented grammar described by root and solves its
// nullable, FIRST and FOLLOW sets.
func GenGrammar(root *parser.AST) (*Grammar, error) {
	gram, err := genGrammarStructure(root)
	if err != nil {
		return nil, err
	}

	gram.first = genFirst(gram.symTab, gram.prods)
	gram.follow = genFollow(gram.symTab, gram.prods, gram.first, gram.start, gram.eof)

	return gram, nil
}

func genGrammarStructure(root *parser.AST) (*Grammar, error) {
	if root == nil || root.Ty != parser.ASTTypeStart {
		return nil, fmt.Errorf("the root of an AST must be a start node")
	}

	symTab := newSymbolTable()
	prods := newProductionSet()
	gram := &Grammar{
		symTab: symTab,
		prods:  prods,
	}

	startSym, err := symTab.registerStartSymbol(StartSymbolText)
	if err != nil {
		return nil, err
	}
	gram.start = startSym
	prods.declare(startSym)

	// Register all non-terminal symbols with the symbol table
	for _, ast := range root.Children {
		if ast.Ty != parser.ASTTypeProduction {
			continue
		}

		lhsAST := ast.Children[0]
		lhsText, ok := lhsAST.GetText()
		if !ok {
			return nil, fmt.Errorf("a node of the AST does not have a text representation; node: %#v", lhsAST)
		}
		if err := checkReservedText(lhsAST); err != nil {
			return nil, err
		}
		lhsSym, err := symTab.registerNonTerminalSymbol(lhsText)
		if err != nil {
			return nil, err
		}
		prods.declare(lhsSym)

		// The first declaration names the user-visible start symbol
		if gram.originalStart.isNil() {
			gram.originalStart = lhsSym
		}
	}
	if gram.originalStart.isNil() {
		return nil, fmt.Errorf("%w: a grammar contains no declarations", parser.ErrMalformedGrammar)
	}

	// Every other symbol is a terminal symbol
	for _, ast := range root.Children {
		if ast.Ty != parser.ASTTypeProduction {
			continue
		}
		for _, altAST := range ast.Children[1:] {
			for _, symAST := range altAST.Children {
				symText, ok := symAST.GetText()
				if !ok {
					return nil, fmt.Errorf("a node of the AST does not have a text representation; node: %#v", symAST)
				}
				if err := checkReservedText(symAST); err != nil {
					return nil, err
				}
				_, err := symTab.registerTerminalSymbol(symText)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	eofSym, err := symTab.registerEOFSymbol(EOFSymbolText)
	if err != nil {
		return nil, err
	}
	gram.eof = eofSym

	// Generate the augmented start production and then the declared ones
	startProd, err := newProduction(startSym, []Symbol{gram.originalStart, eofSym})
	if err != nil {
		return nil, err
	}
	if err := prods.append(startProd); err != nil {
		return nil, err
	}

	for _, ast := range root.Children {
		if ast.Ty != parser.ASTTypeProduction {
			continue
		}

		lhsText, _ := ast.Children[0].GetText()
		lhsSym, _ := symTab.ToSymbol(lhsText)

		for _, altAST := range ast.Children[1:] {
			rhsSyms := make([]Symbol, len(altAST.Children))
			for i, symAST := range altAST.Children {
				symText, _ := symAST.GetText()
				rhsSyms[i], _ = symTab.ToSymbol(symText)
			}

			prod, err := newProduction(lhsSym, rhsSyms)
			if err != nil {
				return nil, err
			}
			if err := prods.append(prod); err != nil {
				return nil, err
			}
		}

		if ps, _ := prods.findByLHS(lhsSym); len(ps) == 0 {
			log.Warn("a non-terminal symbol has no productions; symbol: %v (%v)", lhsText, ast.Pos())
		}
	}

	log.Log("grammar: terminals: %v, non-terminals: %v, productions: %v",
		symTab.getNumOfTerminalSymbols(), symTab.getNumOfNonTerminalSymbols(), len(prods.getAll()))

	return gram, nil
}

func checkReservedText(ast *parser.AST) error {
	text, _ := ast.GetText()
	if text == StartSymbolText || text == EOFSymbolText {
		return &parser.SyntaxError{
			Pos:     ast.Pos(),
			Kind:    parser.ErrMalformedGrammar,
			Message: fmt.Sprintf("a symbol uses a reserved name; symbol: %v", text),
		}
	}
	return nil
}

// StartSymbol returns the name of the augmented start symbol.
func (g *Grammar) StartSymbol() string {
	return g.toText(g.start)
}

// OriginalStartSymbol returns the non-terminal of the first declaration.
func (g *Grammar) OriginalStartSymbol() string {
	return g.toText(g.originalStart)
}

// AcceptSymbol returns the name of the end-of-input symbol.
func (g *Grammar) AcceptSymbol() string {
	return g.toText(g.eof)
}

// Terminals returns the terminal symbols in order of first appearance, with
// the end-of-input symbol last.
func (g *Grammar) Terminals() []string {
	return g.toTexts(g.symTab.terminalSymbols())
}

// NonTerminals returns the augmented start symbol followed by the declared
// non-terminals in declaration order.
func (g *Grammar) NonTerminals() []string {
	return g.toTexts(g.symTab.nonTerminalSymbols())
}

func (g *Grammar) IsTerminal(text string) bool {
	sym, ok := g.symTab.ToSymbol(text)
	return ok && sym.isTerminal()
}

func (g *Grammar) IsNonTerminal(text string) bool {
	sym, ok := g.symTab.ToSymbol(text)
	return ok && sym.isNonTerminal()
}

// Productions returns the bodies of a non-terminal's productions in
// declaration order. An empty body is an empty slice.
func (g *Grammar) Productions(nonTerminal string) ([][]string, bool) {
	sym, ok := g.symTab.ToSymbol(nonTerminal)
	if !ok || !sym.isNonTerminal() {
		return nil, false
	}
	prods, ok := g.prods.findByLHS(sym)
	if !ok {
		return nil, false
	}
	bodies := make([][]string, len(prods))
	for i, prod := range prods {
		bodies[i] = g.toTexts(prod.rhs)
	}
	return bodies, true
}

// First returns the FIRST set of any symbol.
func (g *Grammar) First(text string) ([]string, bool) {
	sym, ok := g.symTab.ToSymbol(text)
	if !ok {
		return nil, false
	}
	return g.toTexts(g.first.findBySymbol(sym).symbols()), true
}

// FirstOfSequence returns the FIRST set of a sequence of symbols and whether
// the whole sequence is nullable.
func (g *Grammar) FirstOfSequence(texts ...string) ([]string, bool, error) {
	seq := make([]Symbol, len(texts))
	for i, text := range texts {
		sym, ok := g.symTab.ToSymbol(text)
		if !ok {
			return nil, false, fmt.Errorf("a symbol was not found; symbol: %v", text)
		}
		seq[i] = sym
	}
	fst, nullable := g.first.find(seq)
	return g.toTexts(fst.symbols()), nullable, nil
}

// Follow returns the FOLLOW set of a non-terminal.
func (g *Grammar) Follow(nonTerminal string) ([]string, bool) {
	sym, ok := g.symTab.ToSymbol(nonTerminal)
	if !ok || !sym.isNonTerminal() {
		return nil, false
	}
	return g.toTexts(g.follow.findBySymbol(sym).symbols()), true
}

// Nullable returns the nullable non-terminals in symbol order.
func (g *Grammar) Nullable() []string {
	return g.toTexts(g.first.nullable.symbols())
}

func (g *Grammar) IsNullable(text string) bool {
	sym, ok := g.symTab.ToSymbol(text)
	return ok && g.first.isNullable(sym)
}

func (g *Grammar) toText(sym Symbol) string {
	text, ok := g.symTab.ToText(sym)
	if !ok {
		return "<Symbol Not Found>"
	}
	return text
}

func (g *Grammar) toTexts(syms []Symbol) []string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = g.toText(sym)
	}
	return texts
}
