package helpers

import (
	"sort"
	"strings"

	"github.com/aymerick/raymond/lexer"
)

// emptyArg is the literal standing in for a positional argument the
// template left out
const emptyArg = `""`

// expression tracks one mustache or subexpression while scanning
type expression struct {
	name     string
	expect   bool
	args     int
	insertAt int
	prev     lexer.TokenKind
}

// Normalize rewrites source so that calls to helpers registered with
// RegisterOptional carry every positional argument
func (r *Registry) Normalize(source string) string {
	return PadArguments(source, r.Arities())
}

// PadArguments appends empty string arguments to calls of the named helpers
// that pass fewer positional arguments than the helper declares. Missing
// arguments go before any hash pair or block params. Source that does not
// scan is returned unchanged so the parser reports the error.
func PadArguments(source string, arities map[string]int) string {
	if len(arities) == 0 || !strings.Contains(source, "{{") {
		return source
	}

	tokens := lexer.Collect(source)
	pads := make(map[int]int)
	var stack []*expression

	for i, tok := range tokens {
		switch tok.Kind {
		case lexer.TokenError:
			return source
		case lexer.TokenEOF, lexer.TokenContent, lexer.TokenComment:
			continue
		}

		if opensMustache(tok.Kind) {
			stack = append(stack, &expression{
				expect:   tok.Kind != lexer.TokenOpenPartial && tok.Kind != lexer.TokenOpenEndBlock,
				insertAt: -1,
				prev:     tok.Kind,
			})
			continue
		}
		if len(stack) == 0 {
			continue
		}
		top := stack[len(stack)-1]

		if closesExpression(tok.Kind) {
			if top.insertAt < 0 {
				top.insertAt = tok.Pos
			}
			if want, ok := arities[top.name]; ok && top.args < want {
				pads[top.insertAt] += want - top.args
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].prev = tok.Kind
			}
			continue
		}

		if top.expect {
			top.expect = false
			if tok.Kind == lexer.TokenID && !followedBy(tokens, i, lexer.TokenSep) {
				top.name = tok.Val
				top.prev = tok.Kind
				continue
			}
		}

		if top.insertAt < 0 {
			switch {
			case tok.Kind == lexer.TokenOpenBlockParams:
				top.insertAt = tok.Pos
			case tok.Kind == lexer.TokenID && followedBy(tokens, i, lexer.TokenEquals):
				top.insertAt = tok.Pos
			case startsArgument(tok.Kind) && top.prev != lexer.TokenSep && top.prev != lexer.TokenData:
				top.args++
			}
		}
		top.prev = tok.Kind

		if tok.Kind == lexer.TokenOpenSexpr {
			stack = append(stack, &expression{expect: true, insertAt: -1, prev: tok.Kind})
		}
	}

	if len(pads) == 0 {
		return source
	}
	return insertArgs(source, pads)
}

func insertArgs(source string, pads map[int]int) string {
	positions := make([]int, 0, len(pads))
	for pos := range pads {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	var b strings.Builder
	last := 0
	for _, pos := range positions {
		b.WriteString(source[last:pos])
		b.WriteByte(' ')
		for n := 0; n < pads[pos]; n++ {
			b.WriteString(emptyArg)
			b.WriteByte(' ')
		}
		last = pos
	}
	b.WriteString(source[last:])
	return b.String()
}

func followedBy(tokens []lexer.Token, i int, kind lexer.TokenKind) bool {
	return i+1 < len(tokens) && tokens[i+1].Kind == kind
}

func opensMustache(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenOpen, lexer.TokenOpenUnescaped, lexer.TokenOpenBlock,
		lexer.TokenOpenInverse, lexer.TokenOpenInverseChain, lexer.TokenOpenRawBlock,
		lexer.TokenOpenPartial, lexer.TokenOpenEndBlock, lexer.TokenOpenEndRawBlock:
		return true
	}
	return false
}

func closesExpression(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenClose, lexer.TokenCloseUnescaped, lexer.TokenCloseSexpr, lexer.TokenCloseRawBlock:
		return true
	}
	return false
}

func startsArgument(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenID, lexer.TokenString, lexer.TokenNumber, lexer.TokenBoolean,
		lexer.TokenData, lexer.TokenOpenSexpr:
		return true
	}
	return false
}
