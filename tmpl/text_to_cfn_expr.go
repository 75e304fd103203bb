package tmpl

import (
	"encoding/json"
	"fmt"
	"strings"
)

var exprStarts = []string{`{"Ref":`, `{"Fn::`}

// TextToCfnExprTokens splits src into JSON string literals and the CloudFormation expressions embedded in it.
// A candidate expression that is not valid JSON is kept as text.
func TextToCfnExprTokens(src string) []json.RawMessage {
	tokens := []json.RawMessage{}
	i := 0
	strStart := -1

	finishStr := func() {
		if strStart != -1 {
			bt, err := json.Marshal(src[strStart:i])
			if err != nil {
				panic(err)
			}
			tokens = append(tokens, json.RawMessage(bt))
			strStart = -1
		}
	}

	readExpr := func() bool {
		dec := json.NewDecoder(strings.NewReader(src[i:]))
		var expr json.RawMessage
		if err := dec.Decode(&expr); err != nil {
			return false
		}
		finishStr()
		tokens = append(tokens, expr)
		i += int(dec.InputOffset())
		return true
	}

Loop:
	for i < len(src) {
		if src[i] == '{' {
			for _, start := range exprStarts {
				if strings.HasPrefix(src[i:], start) && readExpr() {
					continue Loop
				}
			}
		}
		if strStart == -1 {
			strStart = i
		}
		i++
	}
	finishStr()
	return tokens
}

// ContainsCfnExpr reports whether src embeds at least one CloudFormation expression.
func ContainsCfnExpr(src string) bool {
	for _, t := range TextToCfnExprTokens(src) {
		if len(t) > 0 && t[0] == '{' {
			return true
		}
	}
	return false
}

// TextToCfnExpr returns src as a JSON string, or as an Fn::Join over its literal and expression parts.
func TextToCfnExpr(src string) string {
	tokens := TextToCfnExprTokens(src)
	if !ContainsCfnExpr(src) {
		bt, err := json.Marshal(src)
		if err != nil {
			panic(err)
		}
		return string(bt)
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}
	return fmt.Sprintf(`{"Fn::Join": ["", [%s]]}`, strings.Join(parts, ", "))
}
