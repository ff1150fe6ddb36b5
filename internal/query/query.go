// Package query is the JSONPath query engine. An expression is parsed
// once and evaluated against a JSON document value parsed from inline
// text or loaded from a file; both are request-scoped and never shared.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/theory/jsonpath"
)

var (
	ErrExpressionSyntax = errors.New("invalid JSONPath expression")
	ErrExpressionEval   = errors.New("error executing JSONPath")
	ErrDocumentParse    = errors.New("invalid JSON")
)

// ParseExpression validates and compiles a JSONPath expression.
func ParseExpression(expr string) (*jsonpath.Path, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

// classify sorts an underlying diagnostic into syntax vs evaluation
// errors by string matching. Best effort only; both kinds surface the
// same way at the API boundary.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "parse") || strings.Contains(msg, "syntax") || strings.Contains(msg, "unexpected") {
		return fmt.Errorf("%w: %v", ErrExpressionSyntax, err)
	}
	return fmt.Errorf("%w: %v", ErrExpressionEval, err)
}

// Evaluate returns every value the compiled expression selects from the
// document, in document traversal order. No match is an empty slice,
// not an error.
func Evaluate(p *jsonpath.Path, document any) []any {
	selected := p.Select(document)
	values := make([]any, 0, len(selected))
	for _, v := range selected {
		values = append(values, v)
	}
	return values
}

// evaluate parses and evaluates one expression, trapping any engine
// panic as an evaluation error so one bad expression can never take
// down the batch.
func evaluate(document any, expr string) (values []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = fmt.Errorf("%w: %v", ErrExpressionEval, r)
		}
	}()

	p, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}
	return Evaluate(p, document), nil
}

// Collapse applies the boundary result-shape convention: no match is
// nil, a single match is the value itself, multiple matches are the
// slice unchanged.
func Collapse(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}

// ParseDocument parses a JSON document from inline text.
func ParseDocument(data string) (any, error) {
	var document any
	if err := json.Unmarshal([]byte(data), &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	return document, nil
}
