package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// replacementTemplate is a replacement string parsed into literal runs
// and group references, so bulk substitution pays the parse cost once
// instead of once per text.
type replacementTemplate []templatePart

type templatePart struct {
	literal string
	group   int // valid when literal is empty and group >= 0; 0 is the whole match
}

// parseTemplate parses python-style backreference syntax: \1..\99,
// \g<name>, \g<0>, plus the escapes \\, \n, \t, \r. Group references
// are validated against the pattern's declared groups.
func (c *Compiled) parseTemplate(replacement string) (replacementTemplate, error) {
	var (
		tmpl    replacementTemplate
		literal strings.Builder
	)
	flushLiteral := func() {
		if literal.Len() > 0 {
			tmpl = append(tmpl, templatePart{literal: literal.String(), group: -1})
			literal.Reset()
		}
	}
	addGroup := func(n int) error {
		if n > c.NumGroups() {
			return fmt.Errorf("invalid group reference %d in replacement", n)
		}
		flushLiteral()
		tmpl = append(tmpl, templatePart{group: n})
		return nil
	}

	for i := 0; i < len(replacement); i++ {
		ch := replacement[i]
		if ch != '\\' {
			literal.WriteByte(ch)
			continue
		}
		if i+1 >= len(replacement) {
			return nil, fmt.Errorf("bad escape (end of replacement) at position %d", i)
		}
		i++
		switch esc := replacement[i]; {
		case esc == '\\':
			literal.WriteByte('\\')
		case esc == 'n':
			literal.WriteByte('\n')
		case esc == 't':
			literal.WriteByte('\t')
		case esc == 'r':
			literal.WriteByte('\r')
		case esc >= '0' && esc <= '9':
			// Up to two digits, consumed greedily.
			num := int(esc - '0')
			if i+1 < len(replacement) && replacement[i+1] >= '0' && replacement[i+1] <= '9' {
				num = num*10 + int(replacement[i+1]-'0')
				i++
			}
			if err := addGroup(num); err != nil {
				return nil, err
			}
		case esc == 'g':
			if i+1 >= len(replacement) || replacement[i+1] != '<' {
				return nil, fmt.Errorf("missing < after \\g at position %d", i)
			}
			end := strings.IndexByte(replacement[i+2:], '>')
			if end < 0 {
				return nil, fmt.Errorf("unterminated group name at position %d", i)
			}
			name := replacement[i+2 : i+2+end]
			i += 2 + end
			if name == "" {
				return nil, fmt.Errorf("empty group reference in replacement")
			}
			if num, err := strconv.Atoi(name); err == nil {
				if err := addGroup(num); err != nil {
					return nil, err
				}
				continue
			}
			idx := c.groupIndexByName(name)
			if idx < 0 {
				return nil, fmt.Errorf("unknown group name %q in replacement", name)
			}
			if err := addGroup(idx); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("bad escape \\%c in replacement", esc)
		}
	}
	flushLiteral()
	return tmpl, nil
}

// expand writes the template for one match given its submatch index
// pairs. A referenced group that did not participate expands to the
// empty string.
func (t replacementTemplate) expand(b *strings.Builder, text string, idx []int) {
	for _, part := range t {
		if part.literal != "" {
			b.WriteString(part.literal)
			continue
		}
		slot := 2 * part.group
		if slot+1 < len(idx) && idx[slot] >= 0 {
			b.WriteString(text[idx[slot]:idx[slot+1]])
		}
	}
}
