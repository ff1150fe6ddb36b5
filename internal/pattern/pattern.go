// Package pattern is the regex query engine. A pattern plus a flag set
// compiles to a request-scoped handle that is applied to one text or a
// list of texts; the handle is never cached or shared across requests.
package pattern

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// Compiled is an immutable compiled pattern owned by the single
// operation invocation that created it.
type Compiled struct {
	source string
	re     *coregex.Regex
}

// Compile translates the flag set to the engine's native representation
// and compiles the pattern. This is the only failure point tied to
// pattern syntax.
func Compile(pattern string, flags []Flag) (*Compiled, error) {
	prefix, err := inlinePrefix(flags)
	if err != nil {
		return nil, err
	}
	re, err := coregex.Compile(prefix + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return &Compiled{source: pattern, re: re}, nil
}

// Source returns the pattern text as supplied by the caller, without
// the flag prefix.
func (c *Compiled) Source() string {
	return c.source
}

// FirstMatch returns the leftmost match in text, or nil if there is
// none. Scanning stops at the first success.
func (c *Compiled) FirstMatch(text string) *Match {
	idx := c.re.FindStringSubmatchIndex(text)
	if idx == nil {
		return nil
	}
	m := matchFromIndex(text, idx)
	return &m
}

// FindAll returns every non-overlapping match scanned left to right.
// The engine resumes after each match end, advancing one position past
// zero-length matches so scanning always terminates.
func (c *Compiled) FindAll(text string) []Match {
	all := c.re.FindAllStringSubmatchIndex(text, -1)
	if all == nil {
		return nil
	}
	matches := make([]Match, 0, len(all))
	for _, idx := range all {
		matches = append(matches, matchFromIndex(text, idx))
	}
	return matches
}

// Substitute replaces up to count non-overlapping matches with the
// replacement template. Count 0 means all; a negative count replaces
// nothing. The template may reference groups with \1..\99 and \g<name>
// syntax; it is parsed once per call. Returns the transformed text and
// the number of replacements made.
func (c *Compiled) Substitute(replacement, text string, count int) (string, int, error) {
	tmpl, err := c.parseTemplate(replacement)
	if err != nil {
		return text, 0, err
	}
	result, made := c.substituteParsed(tmpl, text, count)
	return result, made, nil
}

// substituteParsed applies an already-parsed replacement template, so
// bulk calls parse the template once for the whole batch.
func (c *Compiled) substituteParsed(tmpl replacementTemplate, text string, count int) (string, int) {
	if count < 0 {
		return text, 0
	}
	limit := count
	if limit == 0 {
		limit = -1
	}
	all := c.re.FindAllStringSubmatchIndex(text, limit)
	if len(all) == 0 {
		return text, 0
	}

	var b strings.Builder
	last := 0
	for _, idx := range all {
		b.WriteString(text[last:idx[0]])
		tmpl.expand(&b, text, idx)
		last = idx[1]
	}
	b.WriteString(text[last:])
	return b.String(), len(all)
}

// Split splits text at each non-overlapping match, keeping at most
// maxsplit splits. Maxsplit 0 means unlimited; a negative maxsplit
// splits nothing. Captured group text is interleaved between segments;
// a group that did not participate contributes an empty string. The
// second return value is the number of elements added beyond the
// original text, which is what the wire contract reports as splits
// made.
func (c *Compiled) Split(text string, maxsplit int) ([]string, int) {
	if maxsplit < 0 {
		return []string{text}, 0
	}
	limit := maxsplit
	if limit == 0 {
		limit = -1
	}
	all := c.re.FindAllStringSubmatchIndex(text, limit)

	parts := make([]string, 0, len(all)+1)
	last := 0
	for _, idx := range all {
		parts = append(parts, text[last:idx[0]])
		for g := 2; g < len(idx); g += 2 {
			if idx[g] < 0 {
				parts = append(parts, "")
			} else {
				parts = append(parts, text[idx[g]:idx[g+1]])
			}
		}
		last = idx[1]
	}
	parts = append(parts, text[last:])
	return parts, len(parts) - 1
}

// NumGroups returns how many capturing groups the pattern declares.
// The engine counts the implicit whole-match group 0 in NumSubexp, so
// it is excluded here.
func (c *Compiled) NumGroups() int {
	return c.re.NumSubexp() - 1
}

// groupIndexByName resolves a named group to its declared index, or -1.
func (c *Compiled) groupIndexByName(name string) int {
	for i, n := range c.re.SubexpNames() {
		if i > 0 && n == name {
			return i
		}
	}
	return -1
}
