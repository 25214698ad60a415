package metadata

import (
	"regexp"
	"strings"
	"unicode"
)

// metaAssignPattern matches the conventional inline metadata declaration:
// an object literal assigned to a `meta` binding, optionally exported.
var metaAssignPattern = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const|let|var)\s+meta\s*=\s*\{`)

// matchBrace returns the index of the brace closing the one at open.
// String literals (single, double, and backtick quoted) are skipped so
// braces inside them do not count. Returns false when the literal is
// never closed.
func matchBrace(text string, open int) (int, bool) {
	depth := 0
	i := open
	for i < len(text) {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		case '\'', '"', '`':
			end, ok := skipString(text, i)
			if !ok {
				return 0, false
			}
			i = end
		}
		i++
	}
	return 0, false
}

// skipString advances past a quoted string starting at i, honoring
// backslash escapes. Returns the index of the closing quote.
func skipString(text string, i int) (int, bool) {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j, true
		}
	}
	return 0, false
}

// parseObjectLiteral parses the content between the braces of an inline
// metadata literal into a key/value map. Only plain pairs with string,
// number, boolean, or null values are understood; the snippet is never
// evaluated as code. Returns nil when the content does not fit that
// restricted grammar. Null values are dropped (the field is absent).
func parseObjectLiteral(inner string) map[string]string {
	fields := make(map[string]string)
	p := &literalParser{input: inner}

	for {
		p.skipSpace()
		if p.done() {
			return fields
		}

		key, ok := p.parseKey()
		if !ok {
			return nil
		}

		p.skipSpace()
		if !p.consume(':') {
			return nil
		}

		p.skipSpace()
		value, isNull, ok := p.parseValue()
		if !ok {
			return nil
		}
		if !isNull {
			fields[key] = value
		}

		p.skipSpace()
		if p.done() {
			return fields
		}
		if !p.consume(',') {
			return nil
		}
	}
}

// literalParser is a minimal scanner over the inside of an object literal.
type literalParser struct {
	input string
	pos   int
}

func (p *literalParser) done() bool {
	return p.pos >= len(p.input)
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// parseKey reads a bare identifier or a quoted string key.
func (p *literalParser) parseKey() (string, bool) {
	if p.done() {
		return "", false
	}

	c := p.input[p.pos]
	if c == '\'' || c == '"' {
		return p.parseQuoted()
	}

	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", false
	}
	return p.input[start:p.pos], true
}

// parseValue reads a primitive value. The second return reports null.
func (p *literalParser) parseValue() (string, bool, bool) {
	if p.done() {
		return "", false, false
	}

	c := p.input[p.pos]
	switch {
	case c == '\'' || c == '"' || c == '`':
		s, ok := p.parseQuoted()
		return s, false, ok
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		start := p.pos
		p.pos++
		for p.pos < len(p.input) && (p.input[p.pos] == '.' || (p.input[p.pos] >= '0' && p.input[p.pos] <= '9')) {
			p.pos++
		}
		return p.input[start:p.pos], false, true
	default:
		start := p.pos
		for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
			p.pos++
		}
		switch p.input[start:p.pos] {
		case "true", "false":
			return p.input[start:p.pos], false, true
		case "null", "undefined":
			return "", true, true
		}
		return "", false, false
	}
}

// parseQuoted reads a quoted string and resolves backslash escapes.
func (p *literalParser) parseQuoted() (string, bool) {
	quote := p.input[p.pos]
	var sb strings.Builder

	for i := p.pos + 1; i < len(p.input); i++ {
		switch p.input[i] {
		case '\\':
			if i+1 >= len(p.input) {
				return "", false
			}
			i++
			switch p.input[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(p.input[i])
			}
		case quote:
			p.pos = i + 1
			return sb.String(), true
		default:
			sb.WriteByte(p.input[i])
		}
	}
	return "", false
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
