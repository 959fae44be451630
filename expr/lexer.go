package expr

import (
	"sort"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int // 1-based column
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

// operator spellings seen in lesson content that map onto ASCII operators.
var operatorAliases = map[rune]string{
	'+': "+", '-': "-", '*': "*", '/': "/", '^': "^",
	'−': "-", '×': "*", '·': "*", '÷': "/",
}

// lexer splits source into tokens. Letter runs are split greedily into
// known names so that "xsin(x)" and "2pix" read as products.
type lexer struct {
	src   []rune
	names []string // longest first
}

func newLexer(src string, names []string) *lexer {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len([]rune(sorted[i])) > len([]rune(sorted[j]))
	})
	return &lexer{src: []rune(src), names: sorted}
}

func (l *lexer) tokens() ([]token, error) {
	var out []token
	i := 0
	for i < len(l.src) {
		r := l.src[i]
		pos := i + 1
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(l.src) && unicode.IsDigit(l.src[i+1])):
			tok, next, err := l.number(i)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = next
		case unicode.IsLetter(r):
			j := i
			for j < len(l.src) && unicode.IsLetter(l.src[j]) {
				j++
			}
			idents, err := l.split(i, j)
			if err != nil {
				return nil, err
			}
			out = append(out, idents...)
			i = j
		case r == '(':
			out = append(out, token{kind: tokLParen, text: "(", pos: pos})
			i++
		case r == ')':
			out = append(out, token{kind: tokRParen, text: ")", pos: pos})
			i++
		case r == ',':
			out = append(out, token{kind: tokComma, text: ",", pos: pos})
			i++
		default:
			op, ok := operatorAliases[r]
			if !ok {
				return nil, errorf(pos, "unexpected character %q", r)
			}
			out = append(out, token{kind: tokOp, text: op, pos: pos})
			i++
		}
	}
	out = append(out, token{kind: tokEOF, pos: len(l.src) + 1})
	return out, nil
}

// number scans a decimal literal. An exponent is only recognised when 'e' or
// 'E' is immediately followed by a digit, so "2e+1" reads as 2·e + 1.
func (l *lexer) number(start int) (token, int, error) {
	i := start
	digits := func() {
		for i < len(l.src) && unicode.IsDigit(l.src[i]) {
			i++
		}
	}
	digits()
	if i < len(l.src) && l.src[i] == '.' {
		i++
		digits()
	}
	if i+1 < len(l.src) && (l.src[i] == 'e' || l.src[i] == 'E') && unicode.IsDigit(l.src[i+1]) {
		i++
		digits()
	}
	if i < len(l.src) && l.src[i] == '.' {
		return token{}, 0, errorf(i+1, "unexpected '.' in number")
	}
	text := string(l.src[start:i])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, 0, errorf(start+1, "invalid number %q", text)
	}
	return token{kind: tokNumber, text: text, num: v, pos: start + 1}, i, nil
}

func (l *lexer) split(start, end int) ([]token, error) {
	var out []token
	i := start
	for i < end {
		matched := ""
		for _, name := range l.names {
			n := []rune(name)
			if i+len(n) <= end && string(l.src[i:i+len(n)]) == name {
				matched = name
				break
			}
		}
		if matched == "" {
			return nil, errorf(i+1, "unknown identifier %q", string(l.src[i:end]))
		}
		out = append(out, token{kind: tokIdent, text: matched, pos: i + 1})
		i += len([]rune(matched))
	}
	return out, nil
}
