// lexer.go — scanner for Mir source text.
package mir

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LBRACE // "{"
	RBRACE // "}"
	LPAREN // "("
	RPAREN // ")"
	COMMA  // ","
	ARROW  // "->"
	DEFINE // ":="

	// Literals & identifiers
	IDENT
	NUMBER
	STRING
	BOOLEAN

	// Keywords
	OBJECT
	CODE
	DATA
	FUNCTION
	LET
	IF
	FOR
	BREAK
	CONTINUE
	LEAVE
)

// Token is a lexical token with optional decoded literal value.
type Token struct {
	Type    TokenType
	Lexeme  string // raw text slice
	Literal string // decoded value for STRING, spelling for NUMBER/BOOLEAN
	Line    int    // 1-based
	Col     int    // 0-based
}

var keywords = map[string]TokenType{
	"object":   OBJECT,
	"code":     CODE,
	"data":     DATA,
	"function": FUNCTION,
	"let":      LET,
	"if":       IF,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"leave":    LEAVE,
	"true":     BOOLEAN,
	"false":    BOOLEAN,
}

// LexError reports a scan failure with 1-based Line and 0-based Col.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a Mir source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit string) {
	lex := l.src[l.start:l.cur]
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
	l.start = l.cur
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// skipTrivia consumes whitespace and both comment forms. An unterminated
// block comment is a lex error.
func (l *Lexer) skipTrivia() error {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
			l.start = l.cur
		case ch == '/':
			next, ok := l.peekN(1)
			if !ok {
				return nil
			}
			switch next {
			case '/':
				for !l.isAtEnd() {
					c, _ := l.peek()
					if c == '\n' {
						break
					}
					l.advance()
				}
				l.start = l.cur
			case '*':
				l.tokStartLine, l.tokStartCol = l.line, l.col
				l.advance()
				l.advance()
				closed := false
				for !l.isAtEnd() {
					c, _ := l.advance()
					if c == '*' {
						if n, ok := l.peek(); ok && n == '/' {
							l.advance()
							closed = true
							break
						}
					}
				}
				if !closed {
					return l.errorf("unterminated block comment")
				}
				l.start = l.cur
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

// Scan tokenizes the whole source, ending with an EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		if err := l.skipTrivia(); err != nil {
			return nil, err
		}
		l.tokStartLine, l.tokStartCol = l.line, l.col
		if l.isAtEnd() {
			l.addToken(EOF, "")
			return l.tokens, nil
		}
		ch, _ := l.advance()
		switch {
		case ch == '{':
			l.addToken(LBRACE, "")
		case ch == '}':
			l.addToken(RBRACE, "")
		case ch == '(':
			l.addToken(LPAREN, "")
		case ch == ')':
			l.addToken(RPAREN, "")
		case ch == ',':
			l.addToken(COMMA, "")
		case ch == '-':
			if n, ok := l.peek(); ok && n == '>' {
				l.advance()
				l.addToken(ARROW, "")
			} else {
				return nil, l.errorf("unexpected character '-'")
			}
		case ch == ':':
			if n, ok := l.peek(); ok && n == '=' {
				l.advance()
				l.addToken(DEFINE, "")
			} else {
				return nil, l.errorf("unexpected character ':'")
			}
		case ch == '"':
			if err := l.scanString(); err != nil {
				return nil, err
			}
		case isDigit(ch):
			if err := l.scanNumber(ch); err != nil {
				return nil, err
			}
		case isAlpha(ch):
			l.scanIdent()
		default:
			return nil, l.errorf("unexpected character %q", string(ch))
		}
	}
}

func (l *Lexer) scanString() error {
	var out []byte
	for {
		ch, ok := l.advance()
		if !ok || ch == '\n' {
			return l.errorf("unterminated string literal")
		}
		if ch == '"' {
			l.addToken(STRING, string(out))
			return nil
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				return l.errorf("unterminated string literal")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\', '"':
				out = append(out, esc)
			default:
				return l.errorf("invalid escape '\\%s'", string(esc))
			}
			continue
		}
		out = append(out, ch)
	}
}

func (l *Lexer) scanNumber(first byte) error {
	if first == '0' {
		if n, ok := l.peek(); ok && (n == 'x' || n == 'X') {
			l.advance()
			digits := 0
			for {
				n, ok := l.peek()
				if !ok || !isHex(n) {
					break
				}
				l.advance()
				digits++
			}
			if digits == 0 {
				return l.errorf("malformed hex literal")
			}
			l.addToken(NUMBER, l.src[l.start:l.cur])
			return nil
		}
	}
	for {
		n, ok := l.peek()
		if !ok || !isDigit(n) {
			break
		}
		l.advance()
	}
	// A letter glued onto a number is always a mistake.
	if n, ok := l.peek(); ok && isAlpha(n) {
		return l.errorf("malformed number literal")
	}
	l.addToken(NUMBER, l.src[l.start:l.cur])
	return nil
}

func (l *Lexer) scanIdent() {
	for {
		n, ok := l.peek()
		if !ok || !isAlphaNum(n) {
			break
		}
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if tt, ok := keywords[word]; ok {
		l.addToken(tt, word)
		return
	}
	l.addToken(IDENT, word)
}
