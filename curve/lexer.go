package curve

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/types"
	"github.com/zapproject/zappy-sub000/units"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenVariable
	tokenTimes
	tokenPower
	tokenUnit
)

type token struct {
	kind  tokenKind
	text  string
	value decimal.Decimal
	scale decimal.Decimal
}

// tokenize splits a single term such as "2.5gweix^3" into tokens
func tokenize(term string) ([]token, error) {
	var tokens []token
	runes := []rune(term)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '*':
			tokens = append(tokens, token{kind: tokenTimes, text: "*"})
			i++

		case r == '^':
			tokens = append(tokens, token{kind: tokenPower, text: "^"})
			i++

		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			if j < len(runes) && runes[j] == '.' {
				j++
				k := j
				for j < len(runes) && unicode.IsDigit(runes[j]) {
					j++
				}
				if k == j {
					return nil, invalidExpression("malformed number %q in term %q", string(runes[i:j]), term)
				}
			}
			text := string(runes[i:j])
			value, err := decimal.NewFromString(text)
			if err != nil {
				return nil, invalidExpression("malformed number %q in term %q", text, term)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text, value: value})
			i = j

		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			word, err := lexWord(string(runes[i:j]), term)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, word...)
			i = j

		default:
			return nil, invalidExpression("unexpected character %q in term %q", r, term)
		}
	}

	return tokens, nil
}

// lexWord resolves a run of letters. A unit directly followed by the
// variable ("etherx") is written without a separator, so a trailing x is
// split off when the rest is a unit.
func lexWord(word, term string) ([]token, error) {
	lower := strings.ToLower(word)

	if lower == "x" {
		return []token{{kind: tokenVariable, text: word}}, nil
	}

	if scale, ok := units.Lookup(lower); ok {
		return []token{{kind: tokenUnit, text: word, scale: scale}}, nil
	}

	// split on the original word, lowering can change byte lengths
	if last := len(word) - 1; last > 0 && (word[last] == 'x' || word[last] == 'X') {
		stem := word[:last]
		if scale, ok := units.Lookup(strings.ToLower(stem)); ok {
			return []token{
				{kind: tokenUnit, text: stem, scale: scale},
				{kind: tokenVariable, text: word[last:]},
			}, nil
		}
	}

	return nil, invalidExpression("unknown identifier %q in term %q", word, term)
}

func invalidExpression(format string, args ...interface{}) error {
	return &types.CurveError{
		Code:    types.ErrInvalidExpression,
		Message: fmt.Sprintf(format, args...),
	}
}
