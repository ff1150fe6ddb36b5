package pattern

import (
	"reflect"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, pattern string, flags []Flag) *Compiled {
	t.Helper()
	c, err := Compile(pattern, flags)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", pattern, err)
	}
	return c
}

func TestCompileInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"[invalid", "(unclosed", "a{2,1}", "*leading"} {
		if _, err := Compile(pattern, nil); err == nil {
			t.Errorf("Compile(%q) should fail", pattern)
		}
	}
}

func TestFirstMatchEmail(t *testing.T) {
	c := mustCompile(t, `\b\w+@\w+\.\w+\b`, nil)
	text := "Contact us at support@example.com for help"

	m := c.FirstMatch(text)
	if m == nil {
		t.Fatal("FirstMatch() = nil, want a match")
	}
	if m.Match != "support@example.com" {
		t.Errorf("Match = %q, want %q", m.Match, "support@example.com")
	}
	if m.Start != 14 || m.End != 33 {
		t.Errorf("span = [%d,%d), want [14,33)", m.Start, m.End)
	}
	if text[m.Start:m.End] != m.Match {
		t.Error("offsets do not point at the matched substring")
	}
}

func TestFirstMatchReturnsLeftmost(t *testing.T) {
	c := mustCompile(t, `\d+`, nil)
	m := c.FirstMatch("a1bb22ccc333")
	if m == nil || m.Match != "1" {
		t.Fatalf("FirstMatch() = %+v, want leftmost match \"1\"", m)
	}
}

func TestFirstMatchNoMatch(t *testing.T) {
	c := mustCompile(t, `\d+`, nil)
	if m := c.FirstMatch("no digits here"); m != nil {
		t.Errorf("FirstMatch() = %+v, want nil", m)
	}
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []string
	}{
		{
			name:    "non_overlapping",
			pattern: `\d+`,
			text:    "1 22 333",
			want:    []string{"1", "22", "333"},
		},
		{
			name:    "no_matches",
			pattern: `\d+`,
			text:    "none",
			want:    nil,
		},
		{
			name:    "zero_width_makes_progress",
			pattern: `a*`,
			text:    "baa",
			want:    []string{"", "aa", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCompile(t, tt.pattern, nil)
			matches := c.FindAll(tt.text)
			var got []string
			for _, m := range matches {
				got = append(got, m.Match)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindAllGroupSpans(t *testing.T) {
	// The second group is optional and does not participate; its span
	// must be -1/-1 while the third group keeps its true offsets.
	c := mustCompile(t, `(a)(x)?(b)`, nil)
	matches := c.FindAll("ab")
	if len(matches) != 1 {
		t.Fatalf("FindAll() returned %d matches, want 1", len(matches))
	}
	groups := matches[0].Groups
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].Group == nil || *groups[0].Group != "a" || groups[0].Start != 0 || groups[0].End != 1 {
		t.Errorf("group 1 = %+v, want \"a\" at [0,1)", groups[0])
	}
	if groups[1].Group != nil || groups[1].Start != -1 || groups[1].End != -1 {
		t.Errorf("group 2 = %+v, want non-participating (-1,-1)", groups[1])
	}
	if groups[2].Group == nil || *groups[2].Group != "b" || groups[2].Start != 1 || groups[2].End != 2 {
		t.Errorf("group 3 = %+v, want \"b\" at [1,2)", groups[2])
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		replacement string
		text        string
		count       int
		wantText    string
		wantMade    int
	}{
		{
			name:        "replace_all",
			pattern:     `\d+`,
			replacement: "N",
			text:        "1 22 333",
			count:       0,
			wantText:    "N N N",
			wantMade:    3,
		},
		{
			name:        "replace_limited",
			pattern:     `\d+`,
			replacement: "N",
			text:        "1 22 333",
			count:       2,
			wantText:    "N N 333",
			wantMade:    2,
		},
		{
			name:        "negative_count_replaces_nothing",
			pattern:     `\d+`,
			replacement: "N",
			text:        "1 22 333",
			count:       -1,
			wantText:    "1 22 333",
			wantMade:    0,
		},
		{
			name:        "no_match",
			pattern:     `\d+`,
			replacement: "N",
			text:        "abc",
			count:       0,
			wantText:    "abc",
			wantMade:    0,
		},
		{
			name:        "numbered_backreference",
			pattern:     `(\w+)@(\w+)`,
			replacement: `\2 at \1`,
			text:        "alice@example",
			count:       0,
			wantText:    "example at alice",
			wantMade:    1,
		},
		{
			name:        "named_backreference",
			pattern:     `(?P<user>\w+)@`,
			replacement: `\g<user>!`,
			text:        "bob@host",
			count:       0,
			wantText:    "bob!host",
			wantMade:    1,
		},
		{
			name:        "whole_match_reference",
			pattern:     `\d+`,
			replacement: `[\g<0>]`,
			text:        "a1b",
			count:       0,
			wantText:    "a[1]b",
			wantMade:    1,
		},
		{
			name:        "escaped_backslash",
			pattern:     `x`,
			replacement: `\\`,
			text:        "axa",
			count:       0,
			wantText:    `a\a`,
			wantMade:    1,
		},
		{
			name:        "non_participating_group_expands_empty",
			pattern:     `(a)|(b)`,
			replacement: `<\1\2>`,
			text:        "ab",
			count:       0,
			wantText:    "<a><b>",
			wantMade:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCompile(t, tt.pattern, nil)
			got, made, err := c.Substitute(tt.replacement, tt.text, tt.count)
			if err != nil {
				t.Fatalf("Substitute() error = %v", err)
			}
			if got != tt.wantText {
				t.Errorf("Substitute() text = %q, want %q", got, tt.wantText)
			}
			if made != tt.wantMade {
				t.Errorf("Substitute() made = %d, want %d", made, tt.wantMade)
			}
		})
	}
}

func TestSubstituteBadTemplate(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		replacement string
	}{
		{name: "group_out_of_range", pattern: `(a)`, replacement: `\2`},
		{name: "unknown_group_name", pattern: `(a)`, replacement: `\g<missing>`},
		{name: "trailing_backslash", pattern: `a`, replacement: `x\`},
		{name: "bad_escape", pattern: `a`, replacement: `\q`},
		{name: "unterminated_name", pattern: `a`, replacement: `\g<open`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCompile(t, tt.pattern, nil)
			got, made, err := c.Substitute(tt.replacement, "aaa", 0)
			if err == nil {
				t.Fatal("Substitute() should fail")
			}
			if got != "aaa" || made != 0 {
				t.Errorf("failed Substitute() = (%q, %d), want original text and 0", got, made)
			}
		})
	}
}

func TestNumGroups(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{pattern: `abc`, want: 0},
		{pattern: `(a)`, want: 1},
		{pattern: `(\w+)@(\w+)\.(\w+)`, want: 3},
		{pattern: `(?P<user>\w+)@(\w+)`, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			c := mustCompile(t, tt.pattern, nil)
			if got := c.NumGroups(); got != tt.want {
				t.Errorf("NumGroups() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSubstituteLastDeclaredGroup(t *testing.T) {
	c := mustCompile(t, `(a)(b)`, nil)
	got, made, err := c.Substitute(`\2\1`, "ab", 0)
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if got != "ba" || made != 1 {
		t.Errorf("Substitute() = (%q, %d), want (%q, 1)", got, made, "ba")
	}
	if _, _, err := c.Substitute(`\3`, "ab", 0); err == nil {
		t.Error("Substitute() should reject a reference past the last group")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		text     string
		maxsplit int
		want     []string
	}{
		{
			name:     "comma_delimiters",
			pattern:  `[,;|]+`,
			text:     "apple,banana,cherry",
			maxsplit: 0,
			want:     []string{"apple", "banana", "cherry"},
		},
		{
			name:     "mixed_delimiters",
			pattern:  `[,;|]+`,
			text:     "a,b;c|d",
			maxsplit: 0,
			want:     []string{"a", "b", "c", "d"},
		},
		{
			name:     "empty_text",
			pattern:  `[,;|]+`,
			text:     "",
			maxsplit: 0,
			want:     []string{""},
		},
		{
			name:     "no_delimiter_present",
			pattern:  `,`,
			text:     "solo",
			maxsplit: 0,
			want:     []string{"solo"},
		},
		{
			name:     "maxsplit_limits",
			pattern:  `,`,
			text:     "a,b,c,d",
			maxsplit: 2,
			want:     []string{"a", "b", "c,d"},
		},
		{
			name:     "capturing_group_interleaved",
			pattern:  `(,)`,
			text:     "a,b,c",
			maxsplit: 0,
			want:     []string{"a", ",", "b", ",", "c"},
		},
		{
			name:     "non_participating_group_interleaved_empty",
			pattern:  `(x)|,`,
			text:     "a,b",
			maxsplit: 0,
			want:     []string{"a", "", "b"},
		},
		{
			name:     "leading_and_trailing_delimiters",
			pattern:  `,`,
			text:     ",a,",
			maxsplit: 0,
			want:     []string{"", "a", ""},
		},
		{
			name:     "negative_maxsplit_splits_nothing",
			pattern:  `,`,
			text:     "a,b,c",
			maxsplit: -1,
			want:     []string{"a,b,c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCompile(t, tt.pattern, nil)
			parts, made := c.Split(tt.text, tt.maxsplit)
			if !reflect.DeepEqual(parts, tt.want) {
				t.Errorf("Split() = %v, want %v", parts, tt.want)
			}
			if made != len(parts)-1 {
				t.Errorf("SplitsMade = %d, want %d", made, len(parts)-1)
			}
		})
	}
}

// Interleaving matches from FindAll with the gaps from Split (same
// groupless pattern, unlimited splits) must reconstruct the input.
func TestSplitFindAllReconstruction(t *testing.T) {
	texts := []string{
		"apple,banana;cherry|date",
		"a,b,c",
		",leading",
		"trailing,",
		"nodelimiters",
		"",
	}
	c := mustCompile(t, `[,;|]+`, nil)

	for _, text := range texts {
		t.Run("text_"+text, func(t *testing.T) {
			parts, _ := c.Split(text, 0)
			matches := c.FindAll(text)

			var b strings.Builder
			for i, part := range parts {
				b.WriteString(part)
				if i < len(matches) {
					b.WriteString(matches[i].Match)
				}
			}
			if b.String() != text {
				t.Errorf("reconstructed %q, want %q", b.String(), text)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid_pattern", func(t *testing.T) {
		resp := Validate(`\d+`)
		if !resp.Success || !resp.Valid || resp.Error != "" {
			t.Errorf("Validate() = %+v, want success and valid", resp)
		}
	})

	t.Run("invalid_pattern_is_still_operation_success", func(t *testing.T) {
		resp := Validate("[invalid")
		if !resp.Success {
			t.Error("validation of an invalid pattern is still an operation success")
		}
		if resp.Valid {
			t.Error("Valid = true for a malformed pattern")
		}
		if resp.Error == "" {
			t.Error("diagnostic should be non-empty for a malformed pattern")
		}
	})
}

func TestSingleOperationEnvelopes(t *testing.T) {
	t.Run("first_match_compile_error", func(t *testing.T) {
		resp := FirstMatch("[bad", nil, "text")
		if resp.Success || resp.Error == "" || resp.Match != nil {
			t.Errorf("FirstMatch() = %+v, want failure with diagnostic", resp)
		}
		if resp.Pattern != "[bad" || resp.Text != "text" {
			t.Error("failure response should echo pattern and text")
		}
	})

	t.Run("success_echoes_pattern_without_flag_prefix", func(t *testing.T) {
		resp := FirstMatch(`a+`, []Flag{FlagIgnoreCase}, "AAA")
		if !resp.Success || resp.Pattern != `a+` {
			t.Errorf("FirstMatch() = %+v, want success echoing the pattern as supplied", resp)
		}
	})

	t.Run("find_all_empty_slice_not_nil", func(t *testing.T) {
		resp := FindAll(`\d`, nil, "none")
		if !resp.Success || resp.Matches == nil || resp.Count != 0 {
			t.Errorf("FindAll() = %+v, want success with empty matches", resp)
		}
	})

	t.Run("substitute_error_returns_original", func(t *testing.T) {
		resp := Substitute("[bad", nil, "r", "text", 0)
		if resp.Success || resp.ResultText != "text" {
			t.Errorf("Substitute() = %+v, want original text on failure", resp)
		}
	})

	t.Run("split_error_returns_single_part", func(t *testing.T) {
		resp := Split("[bad", nil, "text", 0)
		if resp.Success || !reflect.DeepEqual(resp.Parts, []string{"text"}) {
			t.Errorf("Split() = %+v, want [text] on failure", resp)
		}
	})

	t.Run("unsupported_flag_fails_compilation", func(t *testing.T) {
		resp := FirstMatch(`a`, []Flag{FlagVerbose}, "a")
		if resp.Success || resp.Error == "" {
			t.Errorf("FirstMatch() = %+v, want compile failure for VERBOSE", resp)
		}
	})
}
