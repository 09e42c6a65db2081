package grammar

import (
	"fmt"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

// Symbol packs a kind bit, a sub-kind bit and a base number into 16 bits.
// The sub-kind bit marks the augmented start symbol on a non-terminal and
// the end-of-input symbol on a terminal.
type Symbol uint16

func (s Symbol) String() string {
	kind, isStart, isEOF, base := s.describe()
	var prefix string
	switch {
	case isStart:
		prefix = "s"
	case isEOF:
		prefix = "e"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	case kind == symbolKindTerminal:
		prefix = "t"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, base)
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskSubKindPart    = uint16(0x4000) // 0100 0000 0000 0000
	maskNonStartAndEOF = uint16(0x0000) // 0000 0000 0000 0000
	maskStartOrEOF     = uint16(0x4000) // 0100 0000 0000 0000

	maskBasePart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNil = Symbol(0)

	symbolBaseMin = uint16(1)
	symbolBaseMax = maskBasePart
)

func newSymbol(kind symbolKind, special bool, base uint16) (Symbol, error) {
	if base > symbolBaseMax {
		return symbolNil, fmt.Errorf("a base of a symbol exceeds the limit; limit: %v, passed: %v", symbolBaseMax, base)
	}

	kindMask := maskNonTerminal
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	subKindMask := maskNonStartAndEOF
	if special {
		subKindMask = maskStartOrEOF
	}
	return Symbol(kindMask | subKindMask | base), nil
}

func (s Symbol) isNil() bool {
	_, _, _, base := s.describe()
	return base == 0
}

func (s Symbol) isNonTerminal() bool {
	if s.isNil() {
		return false
	}
	kind, _, _, _ := s.describe()
	return kind == symbolKindNonTerminal
}

func (s Symbol) isTerminal() bool {
	if s.isNil() {
		return false
	}
	return !s.isNonTerminal()
}

func (s Symbol) describe() (symbolKind, bool, bool, uint16) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	isStart := false
	isEOF := false
	if uint16(s)&maskSubKindPart > 0 {
		if kind == symbolKindNonTerminal {
			isStart = true
		} else {
			isEOF = true
		}
	}
	base := uint16(s) & maskBasePart
	return kind, isStart, isEOF, base
}

// SymbolTable maps symbol texts to symbols. Registering a text a second time
// returns the symbol it was first registered as, whatever its kind; this is
// what classifies a body symbol as a terminal only when no declaration
// claimed it first.
type SymbolTable struct {
	text2Sym map[string]Symbol
	sym2Text map[Symbol]string
	nsyms    []Symbol
	tsyms    []Symbol
	nsymBase uint16
	tsymBase uint16
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{},
		sym2Text: map[Symbol]string{},
		nsymBase: symbolBaseMin,
		tsymBase: symbolBaseMin,
	}
}

func (t *SymbolTable) registerStartSymbol(text string) (Symbol, error) {
	return t.register(text, symbolKindNonTerminal, true)
}

func (t *SymbolTable) registerNonTerminalSymbol(text string) (Symbol, error) {
	return t.register(text, symbolKindNonTerminal, false)
}

func (t *SymbolTable) registerEOFSymbol(text string) (Symbol, error) {
	return t.register(text, symbolKindTerminal, true)
}

func (t *SymbolTable) registerTerminalSymbol(text string) (Symbol, error) {
	return t.register(text, symbolKindTerminal, false)
}

func (t *SymbolTable) register(text string, kind symbolKind, special bool) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		return sym, nil
	}

	base := t.nsymBase
	if kind == symbolKindTerminal {
		base = t.tsymBase
	}
	sym, err := newSymbol(kind, special, base)
	if err != nil {
		return symbolNil, err
	}
	if kind == symbolKindTerminal {
		t.tsymBase++
		t.tsyms = append(t.tsyms, sym)
	} else {
		t.nsymBase++
		t.nsyms = append(t.nsyms, sym)
	}
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	return sym, nil
}

func (t *SymbolTable) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := t.text2Sym[text]; ok {
		return sym, true
	}
	return symbolNil, false
}

func (t *SymbolTable) ToText(sym Symbol) (string, bool) {
	if text, ok := t.sym2Text[sym]; ok {
		return text, true
	}
	return "", false
}

// terminalSymbols returns the terminal symbols in registration order.
func (t *SymbolTable) terminalSymbols() []Symbol {
	return t.tsyms
}

// nonTerminalSymbols returns the non-terminal symbols in registration order.
func (t *SymbolTable) nonTerminalSymbols() []Symbol {
	return t.nsyms
}

func (t *SymbolTable) getNumOfTerminalSymbols() int {
	return len(t.tsyms)
}

func (t *SymbolTable) getNumOfNonTerminalSymbols() int {
	return len(t.nsyms)
}
