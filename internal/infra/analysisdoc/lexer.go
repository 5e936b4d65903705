package analysisdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// LiteralKind discriminates the literal forms a table row may carry.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitInt
	LitFloat
	LitNull // the ~ placeholder
	LitAtom // bare token, e.g. a timestamp
	LitList // [ ... ] of strings/atoms
)

// Literal is one parsed row field.
type Literal struct {
	Kind  LiteralKind
	Str   string
	Int   int64
	Float float64
	List  []string
}

// AsString accepts quoted strings and bare atoms.
func (l Literal) AsString() (string, error) {
	switch l.Kind {
	case LitString, LitAtom:
		return l.Str, nil
	default:
		return "", fmt.Errorf("field is not a string")
	}
}

// AsInt accepts integer literals only.
func (l Literal) AsInt() (int, error) {
	if l.Kind != LitInt {
		return 0, fmt.Errorf("field is not an integer")
	}
	return int(l.Int), nil
}

// AsFloat accepts both float and integer literals.
func (l Literal) AsFloat() (float64, error) {
	switch l.Kind {
	case LitFloat:
		return l.Float, nil
	case LitInt:
		return float64(l.Int), nil
	default:
		return 0, fmt.Errorf("field is not numeric")
	}
}

// lexer walks one row line. It has no lookahead beyond the current byte;
// parseRow drives it as a recursive-descent reader.
type lexer struct {
	s   string
	pos int
}

func (lx *lexer) skipSpaces() {
	for lx.pos < len(lx.s) && (lx.s[lx.pos] == ' ' || lx.s[lx.pos] == '\t') {
		lx.pos++
	}
}

func (lx *lexer) eof() bool {
	lx.skipSpaces()
	return lx.pos >= len(lx.s)
}

// peek returns the next significant byte without consuming it.
func (lx *lexer) peek() (byte, bool) {
	lx.skipSpaces()
	if lx.pos >= len(lx.s) {
		return 0, false
	}
	return lx.s[lx.pos], true
}

// expect consumes the given byte or fails.
func (lx *lexer) expect(c byte) error {
	got, ok := lx.peek()
	if !ok {
		return fmt.Errorf("col %d: expected %q, got end of row", lx.pos, c)
	}
	if got != c {
		return fmt.Errorf("col %d: expected %q, got %q", lx.pos, c, got)
	}
	lx.pos++
	return nil
}

// accept consumes the byte if present.
func (lx *lexer) accept(c byte) bool {
	got, ok := lx.peek()
	if ok && got == c {
		lx.pos++
		return true
	}
	return false
}

// literal reads one field: string, number, null, list, or bare atom.
func (lx *lexer) literal() (Literal, error) {
	c, ok := lx.peek()
	if !ok {
		return Literal{}, fmt.Errorf("col %d: expected literal, got end of row", lx.pos)
	}

	switch {
	case c == '"':
		s, err := lx.quotedString()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Kind: LitString, Str: s}, nil

	case c == '~':
		lx.pos++
		return Literal{Kind: LitNull}, nil

	case c == '[':
		items, err := lx.list()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Kind: LitList, List: items}, nil

	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return lx.numberOrAtom()

	default:
		return Literal{Kind: LitAtom, Str: lx.atom()}, nil
	}
}

func (lx *lexer) quotedString() (string, error) {
	start := lx.pos
	lx.pos++ // opening quote

	var b strings.Builder
	for lx.pos < len(lx.s) {
		c := lx.s[lx.pos]
		switch c {
		case '"':
			lx.pos++
			return b.String(), nil
		case '\\':
			lx.pos++
			if lx.pos >= len(lx.s) {
				return "", fmt.Errorf("col %d: dangling escape", lx.pos)
			}
			switch lx.s[lx.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(lx.s[lx.pos])
			}
			lx.pos++
		default:
			b.WriteByte(c)
			lx.pos++
		}
	}
	return "", fmt.Errorf("col %d: unterminated string", start)
}

// numberOrAtom reads a numeric-looking token. Timestamps also start with a
// digit, so anything that fails strict numeric parsing falls back to an
// atom (2026-01-15T10:30:00Z stays one token).
func (lx *lexer) numberOrAtom() (Literal, error) {
	raw := lx.atom()

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Literal{Kind: LitInt, Int: i}, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Literal{Kind: LitFloat, Float: f}, nil
	}
	return Literal{Kind: LitAtom, Str: raw}, nil
}

// atom reads until a structural delimiter.
func (lx *lexer) atom() string {
	start := lx.pos
	for lx.pos < len(lx.s) {
		switch lx.s[lx.pos] {
		case ',', ')', ']', ' ', '\t':
			return lx.s[start:lx.pos]
		}
		lx.pos++
	}
	return lx.s[start:]
}

func (lx *lexer) list() ([]string, error) {
	lx.pos++ // opening bracket

	var items []string
	if lx.accept(']') {
		return items, nil
	}

	for {
		lit, err := lx.literal()
		if err != nil {
			return nil, err
		}
		switch lit.Kind {
		case LitString, LitAtom:
			items = append(items, lit.Str)
		case LitInt:
			items = append(items, strconv.FormatInt(lit.Int, 10))
		case LitFloat:
			items = append(items, strconv.FormatFloat(lit.Float, 'f', -1, 64))
		default:
			return nil, fmt.Errorf("col %d: unsupported list element", lx.pos)
		}

		if lx.accept(']') {
			return items, nil
		}
		if err := lx.expect(','); err != nil {
			return nil, err
		}
		// Tolerate a trailing comma before the close.
		if lx.accept(']') {
			return items, nil
		}
	}
}

// parseRow reads one parenthesized tuple: '(' literal (',' literal)* ','? ')'
// with an optional trailing comma after the close.
func parseRow(line string) ([]Literal, error) {
	lx := &lexer{s: line}

	if err := lx.expect('('); err != nil {
		return nil, err
	}

	var fields []Literal
	if lx.accept(')') {
		// Empty tuple; oddball but well-formed.
	} else {
		for {
			lit, err := lx.literal()
			if err != nil {
				return nil, err
			}
			fields = append(fields, lit)

			if lx.accept(')') {
				break
			}
			if err := lx.expect(','); err != nil {
				return nil, err
			}
			if lx.accept(')') {
				break
			}
		}
	}

	lx.accept(',')
	if !lx.eof() {
		return nil, fmt.Errorf("col %d: trailing content after tuple", lx.pos)
	}
	return fields, nil
}
