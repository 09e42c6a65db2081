package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nihei9/ffgram/parser"
)

func genTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	gram, err := NewGrammar(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, gram)
	return gram
}

// genTestGrammarStructure builds an unsolved grammar.
func genTestGrammarStructure(t *testing.T, src string) *Grammar {
	t.Helper()

	psr, err := parser.NewParser(strings.NewReader(src))
	require.NoError(t, err)
	ast, err := psr.Parse()
	require.NoError(t, err)
	gram, err := genGrammarStructure(ast)
	require.NoError(t, err)
	return gram
}

type testSymbolGenerator func(text string) Symbol

func newTestSymbolGenerator(t *testing.T, symTab *SymbolTable) testSymbolGenerator {
	return func(text string) Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found; text: %v", text)
		}
		return sym
	}
}
