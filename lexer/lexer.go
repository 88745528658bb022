// lexer.go implements the tokenizer: a lazy, peekable, restartable-by-copy
// stream from a source string to tokens. Following the teacher's choice
// of a cheap value-typed scanning state, Stream carries nothing but the
// original source and a byte offset, so that peeking or the parser's
// two-token assignment lookahead is just "copy the value, advance the
// copy".

package lexer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"corvid/internal/diag"
	"corvid/token"
)

// delimiters terminates a maximal identifier/keyword run. Punctuation
// already handled by the one- and two-character operator tables is
// included here too, since an identifier immediately followed by one
// of them (e.g. "a,b" or "a)") must not swallow it.
const delimiters = " \t\r\n{}()=;+-*/<>,"

// twoCharOps must be tried before their one-character prefixes.
var twoCharOps = []struct {
	text string
	typ  token.TokenType
}{
	{"<=", token.Lte},
	{">=", token.Gte},
	{"==", token.EqEq},
	{"!=", token.Neq},
}

var oneCharOps = map[byte]token.TokenType{
	'+': token.Add,
	'-': token.Sub,
	'*': token.Mul,
	'/': token.Div,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	'(': token.ParenL,
	')': token.ParenR,
	'{': token.BraceL,
	'}': token.BraceR,
	';': token.Semi,
	',': token.Comma,
}

// Stream is a cheap, copyable cursor over a source string. The zero
// value is not useful; construct one with New. It is intentionally a
// plain value type (no pointers, no shared mutable state) so that
// Peek and the parser's lookahead can copy it freely.
type Stream struct {
	origin string
	offset int
}

// New returns a Stream positioned at the start of src.
func New(src string) Stream {
	return Stream{origin: src, offset: 0}
}

// Position returns the stream's current Position, for diagnostics
// issued before the next token is known (e.g. unexpected EOF).
func (s Stream) Position() token.Position {
	return token.NewPosition(s.origin, s.offset)
}

func (s Stream) remaining() string {
	return s.origin[s.offset:]
}

// Next advances past leading whitespace, then returns the next token
// and the stream advanced past it. The third return value is false
// at end of input — there is no token to return, and s is returned
// advanced only past any trailing whitespace. A lexical failure unwinds via diag.Abort (see TryAll and
// parser.TryParse for where that's caught); there is no partial or
// recoverable result from a failing Next.
func (s Stream) Next() (token.Token, Stream, bool) {
	trimmed := strings.TrimLeft(s.remaining(), " \t\r\n")
	s.offset += len(s.remaining()) - len(trimmed)

	if trimmed == "" {
		return token.Token{}, s, false
	}

	if len(trimmed) >= 2 {
		prefix := trimmed[:2]
		for _, op := range twoCharOps {
			if prefix == op.text {
				pos := s.Position()
				s.offset += 2
				return token.New(op.typ, pos), s, true
			}
		}
	}

	if typ, ok := oneCharOps[trimmed[0]]; ok {
		pos := s.Position()
		s.offset++
		return token.New(typ, pos), s, true
	}

	if isDigit(trimmed[0]) {
		return s.scanNumber(trimmed)
	}

	return s.scanWord(trimmed)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (s Stream) scanNumber(rest string) (token.Token, Stream, bool) {
	pos := s.Position()
	n := 0
	for n < len(rest) && isDigit(rest[n]) {
		n++
	}
	digits := rest[:n]
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		diag.Abort(LexError{Pos: pos, Message: fmt.Sprintf("invalid number literal %q: %s", digits, err)})
	}
	s.offset += n
	return token.NewNum(value, pos), s, true
}

// isIdentByte restricts identifiers to ASCII alphanumerics and
// underscore. The delimiter set alone only says where a word ends;
// this is what rejects a stray symbol like "@" instead of silently
// accepting it as a one-character identifier.
func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func (s Stream) scanWord(rest string) (token.Token, Stream, bool) {
	pos := s.Position()
	n := strings.IndexAny(rest, delimiters)
	if n == -1 {
		n = len(rest)
	}
	if n == 0 {
		diag.Abort(LexError{Pos: pos, Message: "Unable to tokenize"})
	}
	word := rest[:n]
	for i := 0; i < len(word); i++ {
		if !isIdentByte(word[i]) {
			diag.Abort(LexError{Pos: pos, Message: "Unable to tokenize"})
		}
	}
	s.offset += n
	if kw, ok := token.Keywords[word]; ok {
		return token.New(kw, pos), s, true
	}
	return token.NewIdent(word, pos), s, true
}

// TryAll tokenizes src completely, returning every token in order
// followed by an EOF marker, or the LexError that aborted scanning.
// It is a convenience used by developer tooling (token dump, REPL
// input buffering) and by tests; the parser itself drives a Stream directly,
// one token at a time, since it needs the two-token lookahead copy
// trick rather than a fully materialized slice.
func TryAll(src string) (toks []token.Token, err error) {
	defer diag.Recover(&err)
	s := New(src)
	for {
		tok, next, ok := s.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
		s = next
	}
	toks = append(toks, token.New(token.EOF, s.Position()))
	return toks, nil
}

// All is TryAll, fatal on error: it prints a caret diagnostic to
// stderr and exits the process with status 1 rather than returning
// an error.
func All(src string) []token.Token {
	toks, err := TryAll(src)
	if err != nil {
		diag.Fatal(os.Stderr, err)
	}
	return toks
}
