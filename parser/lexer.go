package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type tokenKind string

const (
	tokenKindColon     = tokenKind(":")
	tokenKindVBar      = tokenKind("|")
	tokenKindSemicolon = tokenKind(";")
	tokenKindID        = tokenKind("id")
	tokenKindLiteral   = tokenKind("literal")
	tokenKindEOF       = tokenKind("eof")
)

const (
	commentOpen  = "/*"
	commentClose = "*/"
	quote        = "'"
)

type Position struct {
	Line   int
	Column int
}

func newPosition() Position {
	return Position{
		Line:   1,
		Column: 1,
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%v:%v", p.Line, p.Column)
}

func (p *Position) increment(c rune) {
	if c == '\n' {
		p.Line += 1
		p.Column = 1
	} else {
		p.Column += 1
	}
}

type token struct {
	kind tokenKind
	pos  Position
	text string
}

func (t *token) String() string {
	if t.text == "" {
		return fmt.Sprintf("%v (%v)", t.kind, t.pos)
	}
	return fmt.Sprintf("%v %q (%v)", t.kind, t.text, t.pos)
}

func newSymbolToken(pos Position, kind tokenKind) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(pos Position, text string) *token {
	return &token{
		kind: tokenKindID,
		pos:  pos,
		text: text,
	}
}

func newLiteralToken(pos Position, text string) *token {
	return &token{
		kind: tokenKindLiteral,
		pos:  pos,
		text: text,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

const nullChar = '\u0000'

// lexer splits a source into whitespace-delimited words. Only exact words are
// reserved, so `a:` is a single identifier and `/*x` does not open a comment.
type lexer struct {
	src         *bufio.Reader
	pos         Position
	lastChar    rune
	lastCharPos Position
}

func newLexer(src io.Reader) *lexer {
	return &lexer{
		src:         bufio.NewReader(src),
		pos:         newPosition(),
		lastChar:    nullChar,
		lastCharPos: newPosition(),
	}
}

func (l *lexer) next() (*token, error) {
	for {
		pos, word, eof, err := l.readWord()
		if err != nil {
			return nil, err
		}
		if eof {
			return newEOFToken(pos), nil
		}

		switch {
		case word == ":":
			return newSymbolToken(pos, tokenKindColon), nil
		case word == "|":
			return newSymbolToken(pos, tokenKindVBar), nil
		case word == ";":
			return newSymbolToken(pos, tokenKindSemicolon), nil
		case word == commentOpen:
			err := l.skipComment(pos)
			if err != nil {
				return nil, err
			}
			continue
		case strings.HasPrefix(word, quote):
			return newLiteralToken(pos, strings.Trim(word, quote)), nil
		}

		return newIDToken(pos, word), nil
	}
}

// skipComment discards words up to and including the closing `*/`.
func (l *lexer) skipComment(openPos Position) error {
	for {
		_, word, eof, err := l.readWord()
		if err != nil {
			return err
		}
		if eof {
			return newSyntaxError(openPos, ErrTruncatedInput, "a comment is not closed")
		}
		if word == commentClose {
			return nil
		}
	}
}

// readWord returns the next run of non-whitespace characters and the position
// of its first character.
func (l *lexer) readWord() (Position, string, bool, error) {
	err := l.skipWhitespace()
	if err != nil {
		return l.pos, "", false, err
	}

	pos := l.pos
	var b strings.Builder
	for {
		c, eof, err := l.read()
		if err != nil {
			return pos, "", false, err
		}
		if eof {
			break
		}
		if isWhitespace(c) {
			err := l.restore()
			if err != nil {
				return pos, "", false, err
			}
			break
		}
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		return pos, "", true, nil
	}

	return pos, b.String(), false, nil
}

func (l *lexer) skipWhitespace() error {
	for {
		c, eof, err := l.read()
		if err != nil {
			return err
		}
		if eof {
			return nil
		}
		if !isWhitespace(c) {
			return l.restore()
		}
	}
}

func isWhitespace(c rune) bool {
	return unicode.IsSpace(c)
}

func (l *lexer) read() (rune, bool, error) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return nullChar, true, nil
		}
		return nullChar, false, err
	}
	l.lastChar = c
	l.lastCharPos = l.pos
	l.pos.increment(c)
	return c, false, nil
}

func (l *lexer) restore() error {
	if l.lastChar == nullChar {
		return fmt.Errorf("since the previous character is null, the lexer failed to call the restore")
	}
	l.pos = l.lastCharPos
	l.lastChar = nullChar
	return l.src.UnreadRune()
}
