package grammar

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/ffgram/parser"
)

func TestGenGrammar(t *testing.T) {
	src := `
expr : expr add term
     | term
     ;
term : term mul factor
     | factor
     ;
factor : lparen expr rparen
       | sign number
       ;
sign : minus
     |
     ;
`
	gram := genTestGrammar(t, src)

	assert.Equal(t, "$accept", gram.StartSymbol())
	assert.Equal(t, "expr", gram.OriginalStartSymbol())
	assert.Equal(t, "$end", gram.AcceptSymbol())
	assert.Equal(t, []string{"$accept", "expr", "term", "factor", "sign"}, gram.NonTerminals())
	assert.Equal(t, []string{"add", "mul", "lparen", "rparen", "number", "minus", "$end"}, gram.Terminals())

	expectProds := []struct {
		lhs  string
		alts [][]string
	}{
		{
			lhs: "$accept",
			alts: [][]string{
				{"expr", "$end"},
			},
		},
		{
			lhs: "expr",
			alts: [][]string{
				{"expr", "add", "term"},
				{"term"},
			},
		},
		{
			lhs: "term",
			alts: [][]string{
				{"term", "mul", "factor"},
				{"factor"},
			},
		},
		{
			lhs: "factor",
			alts: [][]string{
				{"lparen", "expr", "rparen"},
				{"sign", "number"},
			},
		},
		{
			lhs: "sign",
			alts: [][]string{
				{"minus"},
				{},
			},
		},
	}
	expectedNumOfProds := 0
	for _, eProd := range expectProds {
		alts, ok := gram.Productions(eProd.lhs)
		require.True(t, ok, "productions were not found; LHS: %v", eProd.lhs)
		if diff := cmp.Diff(eProd.alts, alts); diff != "" {
			t.Fatalf("productions of %v are mismatched (-want +got):\n%s", eProd.lhs, diff)
		}
		expectedNumOfProds += len(eProd.alts)
	}
	assert.Len(t, gram.prods.getAll(), expectedNumOfProds)

	_, ok := gram.Productions("add")
	assert.False(t, ok)
	_, ok = gram.Productions("unknown")
	assert.False(t, ok)
}

func TestGenGrammar_Classification(t *testing.T) {
	gram := genTestGrammar(t, "s : a 'b' c ; a : 'x' ; c : ;")

	for _, text := range []string{"b", "x", "$end"} {
		assert.True(t, gram.IsTerminal(text), text)
		assert.False(t, gram.IsNonTerminal(text), text)
	}
	for _, text := range []string{"$accept", "s", "a", "c"} {
		assert.True(t, gram.IsNonTerminal(text), text)
		assert.False(t, gram.IsTerminal(text), text)
	}
	assert.False(t, gram.IsTerminal("unknown"))
	assert.False(t, gram.IsNonTerminal("unknown"))

	// The symbol sets are disjoint and cover every referenced symbol.
	seen := map[string]struct{}{}
	for _, text := range append(gram.Terminals(), gram.NonTerminals()...) {
		_, dup := seen[text]
		require.False(t, dup, "a symbol is both a terminal and a non-terminal: %v", text)
		seen[text] = struct{}{}
	}
	for _, nsym := range gram.NonTerminals() {
		bodies, _ := gram.Productions(nsym)
		for _, body := range bodies {
			for _, sym := range body {
				assert.Contains(t, seen, sym)
			}
		}
	}
}

func TestGenGrammar_QuotedLiteral(t *testing.T) {
	gram := genTestGrammar(t, "s : 'foo' s | ;")

	assert.Equal(t, []string{"foo", "$end"}, gram.Terminals())
	fst, ok := gram.First("foo")
	require.True(t, ok)
	assert.Equal(t, []string{"foo"}, fst)
	_, ok = gram.First("'foo'")
	assert.False(t, ok)
}

func TestGenGrammar_CommentsDoNotChangeTheResult(t *testing.T) {
	plain := "S : A B ; A : 'a' | ; B : 'b' ;"
	commented := "/* note */ S /* note */ : /* note */ A /* note */ B /* note */ ; /* note */ A : 'a' /* note */ | /* note */ ; B : /* note */ 'b' ; /* note */"

	want := GenReport(genTestGrammar(t, plain))
	got := GenReport(genTestGrammar(t, commented))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("comments changed the result (-want +got):\n%s", diff)
	}
}

func TestGenGrammar_Error(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		errKind error
	}{
		{
			caption: "an empty source",
			src:     "",
			errKind: parser.ErrMalformedGrammar,
		},
		{
			caption: "a production before any declaration",
			src:     "a b ;",
			errKind: parser.ErrMalformedGrammar,
		},
		{
			caption: "a declaration without a non-terminal",
			src:     "a : b ; : c ;",
			errKind: parser.ErrMalformedGrammar,
		},
		{
			caption: "a duplicate declaration",
			src:     "a : b ; a : c ;",
			errKind: parser.ErrMalformedGrammar,
		},
		{
			caption: "a declaration of the reserved start symbol",
			src:     "$accept : b ;",
			errKind: parser.ErrMalformedGrammar,
		},
		{
			caption: "a reference to the reserved end-of-input symbol",
			src:     "a : b '$end' ;",
			errKind: parser.ErrMalformedGrammar,
		},
		{
			caption: "an unterminated comment",
			src:     "a : b ; /* c",
			errKind: parser.ErrTruncatedInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram, err := NewGrammar(strings.NewReader(tt.src))
			require.ErrorIs(t, err, tt.errKind)
			assert.Nil(t, gram)
		})
	}
}

func TestGenGrammar_ErrorPosition(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		pos     parser.Position
	}{
		{
			caption: "a declaration of the reserved start symbol",
			src:     "$accept : b ;",
			pos:     parser.Position{Line: 1, Column: 1},
		},
		{
			caption: "a reference to the reserved end-of-input symbol",
			src:     "a : b '$end' ;",
			pos:     parser.Position{Line: 1, Column: 7},
		},
		{
			caption: "a reserved name on a later line",
			src:     "a : b ;\nc : $accept ;",
			pos:     parser.Position{Line: 2, Column: 5},
		},
		{
			caption: "a duplicate declaration",
			src:     "a : b ; a : c ;",
			pos:     parser.Position{Line: 1, Column: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := NewGrammar(strings.NewReader(tt.src))
			var synErr *parser.SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.pos, synErr.Pos)
			assert.ErrorIs(t, err, parser.ErrMalformedGrammar)
		})
	}
}

func TestGenGrammar_RejectsInvalidAST(t *testing.T) {
	_, err := GenGrammar(nil)
	assert.Error(t, err)

	_, err = GenGrammar(&parser.AST{Ty: parser.ASTTypeStart})
	assert.ErrorIs(t, err, parser.ErrMalformedGrammar)
}

func TestGrammar_AccessorsReturnCopies(t *testing.T) {
	gram := genTestGrammar(t, "S : A B ; A : 'a' | ; B : 'b' ;")

	fst, _ := gram.First("S")
	fst[0] = "mutated"
	terms := gram.Terminals()
	terms[0] = "mutated"
	bodies, _ := gram.Productions("S")
	bodies[0][0] = "mutated"

	fst, _ = gram.First("S")
	assert.Equal(t, []string{"a", "b"}, fst)
	assert.Equal(t, []string{"a", "b", "$end"}, gram.Terminals())
	bodies, _ = gram.Productions("S")
	assert.Equal(t, [][]string{{"A", "B"}}, bodies)
}
