package pattern

import (
	"errors"
	"fmt"
)

// Flag is a named modifier altering pattern-matching semantics.
// The names mirror the flag vocabulary the consuming client sends.
type Flag string

const (
	FlagIgnoreCase Flag = "IGNORECASE"
	FlagMultiline  Flag = "MULTILINE"
	FlagDotAll     Flag = "DOTALL"
	FlagVerbose    Flag = "VERBOSE"
	FlagASCII      Flag = "ASCII"
	FlagLocale     Flag = "LOCALE"
)

var (
	ErrUnknownFlag     = errors.New("unknown regex flag")
	ErrUnsupportedFlag = errors.New("flag has no equivalent in the RE2 dialect")
)

// knownFlags maps each accepted flag name to the engine's inline flag
// letter. A zero letter means the flag is accepted but is already the
// engine default (RE2 perl character classes are ASCII-only).
// VERBOSE and LOCALE are recognised names with no RE2 equivalent; they
// are present here so name validation accepts them, and rejected later
// at compile time.
var knownFlags = map[Flag]byte{
	FlagIgnoreCase: 'i',
	FlagMultiline:  'm',
	FlagDotAll:     's',
	FlagASCII:      0,
	FlagVerbose:    0,
	FlagLocale:     0,
}

// ParseFlags validates raw flag names from a request. Unknown names are
// an input validation error, not silently dropped.
func ParseFlags(names []string) ([]Flag, error) {
	flags := make([]Flag, 0, len(names))
	for _, name := range names {
		f := Flag(name)
		if _, ok := knownFlags[f]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
		flags = append(flags, f)
	}
	return flags, nil
}

// inlinePrefix translates a flag set to the engine's native inline flag
// group, e.g. {IGNORECASE, DOTALL} -> "(?is)". Flags the RE2 dialect
// cannot express fail here, which surfaces as a compilation error.
func inlinePrefix(flags []Flag) (string, error) {
	var letters []byte
	seen := map[byte]bool{}
	for _, f := range flags {
		letter, ok := knownFlags[f]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownFlag, f)
		}
		if f == FlagVerbose || f == FlagLocale {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedFlag, f)
		}
		if letter == 0 || seen[letter] {
			continue
		}
		seen[letter] = true
		letters = append(letters, letter)
	}
	if len(letters) == 0 {
		return "", nil
	}
	return "(?" + string(letters) + ")", nil
}

// FlagInfo describes one flag for the discovery endpoint.
type FlagInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AvailableFlags lists every accepted flag name with a description of
// its effect under this engine.
func AvailableFlags() []FlagInfo {
	return []FlagInfo{
		{Name: string(FlagIgnoreCase), Description: "Perform case-insensitive matching"},
		{Name: string(FlagMultiline), Description: "^ and $ match start/end of each line"},
		{Name: string(FlagDotAll), Description: ". matches any character including newline"},
		{Name: string(FlagVerbose), Description: "Free-spacing mode; not supported by the RE2 dialect, compilation fails"},
		{Name: string(FlagASCII), Description: "Make \\w, \\W, \\b, \\B, \\d, \\D, \\s, \\S match ASCII only (engine default)"},
		{Name: string(FlagLocale), Description: "Locale-dependent matching; not supported by the RE2 dialect, compilation fails"},
	}
}
