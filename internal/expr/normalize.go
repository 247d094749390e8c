package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNone tokenKind = iota
	tokNumber
	tokIdent
	tokOpen
	tokClose
	tokOther
)

// implicitFactors are identifiers that may be directly followed by "(" to
// mean multiplication, as in "x(x+1)".
var implicitFactors = map[string]bool{"x": true, "t": true, "v": true, "pi": true, "e": true}

// Normalize rewrites the calculator shorthand accepted on the command line
// into govaluate syntax:
//
//	2x        -> 2*x
//	3(x+1)    -> 3*(x+1)
//	(x+1)(x)  -> (x+1)*(x)
//	x^2       -> x**2
//	1e-3      -> 0.001
//
// Whitespace is dropped.
func Normalize(s string) (string, error) {
	var sb strings.Builder
	runes := []rune(s)
	prev := tokNone
	prevIdent := ""

	emit := func(kind tokenKind, text string) {
		needStar := false
		switch prev {
		case tokNumber:
			needStar = kind == tokIdent || kind == tokOpen
		case tokClose:
			needStar = kind == tokIdent || kind == tokOpen || kind == tokNumber
		case tokIdent:
			needStar = kind == tokOpen && implicitFactors[prevIdent]
		}
		if needStar {
			sb.WriteString("*")
		}
		sb.WriteString(text)
		prev = kind
		if kind == tokIdent {
			prevIdent = text
		}
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			exponent := false
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < len(runes) && unicode.IsDigit(runes[j]) {
					for j < len(runes) && unicode.IsDigit(runes[j]) {
						j++
					}
					i = j
					exponent = true
				}
			}
			lit := string(runes[start:i])
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return "", fmt.Errorf("malformed number %q", lit)
			}
			if exponent {
				lit = strconv.FormatFloat(v, 'f', -1, 64)
			}
			emit(tokNumber, lit)

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			emit(tokIdent, string(runes[start:i]))

		case r == '(':
			emit(tokOpen, "(")
			i++

		case r == ')':
			emit(tokClose, ")")
			i++

		case r == '^':
			emit(tokOther, "**")
			i++

		default:
			emit(tokOther, string(r))
			i++
		}
	}
	return sb.String(), nil
}
