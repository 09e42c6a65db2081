package parser

import (
	"errors"
	"fmt"
	"io"
)

type ASTType string

const (
	ASTTypeStart       = ASTType("start")
	ASTTypeProduction  = ASTType("production")
	ASTTypeAlternative = ASTType("alternative")
	ASTTypeSymbol      = ASTType("symbol")
	ASTTypeLiteral     = ASTType("literal")
)

// AST is the raw shape of a grammar source. The root has one production node
// per declaration, in declaration order. The first child of a production node
// is the declared non-terminal and the rest are its alternatives. An
// alternative's children are the symbols of its body.
type AST struct {
	Ty       ASTType
	Children []*AST

	token *token
}

func (ast *AST) GetText() (string, bool) {
	if ast.token == nil {
		return "", false
	}
	if ast.token.kind == tokenKindID || ast.token.kind == tokenKindLiteral {
		return ast.token.text, true
	}
	return "", false
}

// Pos returns the position of the token the node was built from. Nodes not
// built from a token return the zero position.
func (ast *AST) Pos() Position {
	if ast.token == nil {
		return Position{}
	}
	return ast.token.pos
}

func (ast *AST) appendChild(child *AST) {
	if ast.Children == nil {
		ast.Children = []*AST{}
	}
	ast.Children = append(ast.Children, child)
}

var (
	ErrMalformedGrammar = errors.New("malformed grammar")
	ErrTruncatedInput   = errors.New("truncated input")
)

// SyntaxError reports where reading stopped. Kind is ErrMalformedGrammar or
// ErrTruncatedInput and is matched with errors.Is.
type SyntaxError struct {
	Pos     Position
	Kind    error
	Message string
}

func newSyntaxError(pos Position, kind error, message string) *SyntaxError {
	return &SyntaxError{
		Pos:     pos,
		Kind:    kind,
		Message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %s (%v, %v)", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

type Parser interface {
	Parse() (*AST, error)
}

type parser struct {
	lex   *lexer
	buf   []*token
	root  *AST
	decl  *AST
	decls map[string]Position
}

func NewParser(src io.Reader) (Parser, error) {
	if src == nil {
		return nil, fmt.Errorf("a source must be a non-nil reader")
	}
	return &parser{
		lex:   newLexer(src),
		buf:   nil,
		root:  nil,
		decl:  nil,
		decls: map[string]Position{},
	}, nil
}

func (p *parser) Parse() (ast *AST, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		ast = nil
		retErr = err
	}()

	p.parseStart()

	return p.root, nil
}

func (p *parser) parseStart() {
	p.root = &AST{
		Ty: ASTTypeStart,
	}

	for {
		tok := p.next()
		switch tok.kind {
		case tokenKindColon:
			p.parseDeclaration(tok)
		case tokenKindVBar, tokenKindSemicolon:
			p.parseProductionEnd(tok)
		case tokenKindID, tokenKindLiteral:
			if tok.text == "" {
				raiseSyntaxError(tok.pos, ErrMalformedGrammar, "a quoted literal is empty")
			}
			p.push(tok)
		case tokenKindEOF:
			p.parseEOF(tok)
			return
		}
	}
}

// parseDeclaration pops the most recently pushed symbol and opens a new
// declaration for it. Symbols pushed before it stay in the buffer.
func (p *parser) parseDeclaration(colon *token) {
	lhs, ok := p.pop()
	if !ok {
		raiseSyntaxError(colon.pos, ErrMalformedGrammar, "a declaration lacks a non-terminal symbol")
	}
	if prev, ok := p.decls[lhs.text]; ok {
		raiseSyntaxError(lhs.pos, ErrMalformedGrammar, fmt.Sprintf("a non-terminal symbol is declared twice; symbol: %v, previous: %v", lhs.text, prev))
	}
	p.decls[lhs.text] = lhs.pos

	decl := &AST{
		Ty:    ASTTypeProduction,
		token: lhs,
	}
	decl.appendChild(newSymbolAST(lhs))
	p.root.appendChild(decl)
	p.decl = decl
}

// parseProductionEnd flushes the whole buffer, in push order, as one
// alternative of the current declaration.
func (p *parser) parseProductionEnd(end *token) {
	if p.decl == nil {
		raiseSyntaxError(end.pos, ErrMalformedGrammar, fmt.Sprintf("%v appears before any declaration", end.kind))
	}

	alt := &AST{
		Ty:    ASTTypeAlternative,
		token: end,
	}
	for _, tok := range p.buf {
		alt.appendChild(newSymbolAST(tok))
	}
	p.decl.appendChild(alt)
	p.buf = nil
}

func (p *parser) parseEOF(eof *token) {
	if len(p.buf) > 0 {
		raiseSyntaxError(p.buf[0].pos, ErrMalformedGrammar, "symbols are not terminated by ; or |")
	}
	if p.decl == nil {
		raiseSyntaxError(eof.pos, ErrMalformedGrammar, "a grammar contains no declarations")
	}
}

func newSymbolAST(tok *token) *AST {
	ty := ASTTypeSymbol
	if tok.kind == tokenKindLiteral {
		ty = ASTTypeLiteral
	}
	return &AST{
		Ty:    ty,
		token: tok,
	}
}

func (p *parser) next() *token {
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	return tok
}

func (p *parser) push(tok *token) {
	p.buf = append(p.buf, tok)
}

func (p *parser) pop() (*token, bool) {
	if len(p.buf) == 0 {
		return nil, false
	}
	tok := p.buf[len(p.buf)-1]
	p.buf = p.buf[:len(p.buf)-1]
	return tok, true
}

func raiseSyntaxError(pos Position, kind error, message string) {
	panic(newSyntaxError(pos, kind, message))
}
