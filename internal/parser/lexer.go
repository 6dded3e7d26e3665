package parser

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

// two-character punctuators recognized greedily. ">>" stays split so nested
// template argument lists close correctly.
var twoCharPuncts = []string{
	"::", "&&", "||", "==", "!=", "<=", ">=", "->", "+=", "-=", "*=", "/=", "<<",
}

// lex tokenizes one translation unit. Comments and preprocessor lines are
// skipped; anything else unknown is an error.
func lex(src []byte) ([]token, error) {
	var toks []token
	line := 1
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			for i < n && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && src[i+1] == '/':
			for i < n && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && src[i+1] == '*':
			i += 2
			for i < n {
				if src[i] == '\n' {
					line++
				}
				if src[i] == '*' && i+1 < n && src[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(src[start:i]), line: line})
		case c >= '0' && c <= '9':
			start := i
			for i < n && (isIdentPart(src[i]) || src[i] == '.') {
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: string(src[start:i]), line: line})
		default:
			if i+2 < n && src[i] == '.' && src[i+1] == '.' && src[i+2] == '.' {
				toks = append(toks, token{kind: tokPunct, text: "...", line: line})
				i += 3
				continue
			}
			if i+1 < n {
				two := string(src[i : i+2])
				if isTwoCharPunct(two) {
					toks = append(toks, token{kind: tokPunct, text: two, line: line})
					i += 2
					continue
				}
			}
			if strings.ContainsRune("(){}[]<>;:,*&=+-/%^|!~.?", rune(c)) {
				toks = append(toks, token{kind: tokPunct, text: string(c), line: line})
				i++
				continue
			}
			return nil, fmt.Errorf("line %d: unexpected character %q", line, c)
		}
	}
	toks = append(toks, token{kind: tokEOF, line: line})
	return toks, nil
}

func isTwoCharPunct(s string) bool {
	for _, p := range twoCharPuncts {
		if s == p {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
