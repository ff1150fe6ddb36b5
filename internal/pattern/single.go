package pattern

// Single-item operations. Each compiles the pattern, applies one
// operation to one text, and reports the outcome as a value; nothing
// here returns an error to the caller.

// MatchResponse is the result of a first-match operation.
type MatchResponse struct {
	Success bool   `json:"success"`
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
	Match   *Match `json:"match"`
	Error   string `json:"error,omitempty"`
}

// FindAllResponse is the result of a find-all operation.
type FindAllResponse struct {
	Success bool    `json:"success"`
	Pattern string  `json:"pattern"`
	Text    string  `json:"text"`
	Matches []Match `json:"matches"`
	Count   int     `json:"count"`
	Error   string  `json:"error,omitempty"`
}

// SubstituteResponse is the result of a substitute operation. On
// failure ResultText falls back to the original text.
type SubstituteResponse struct {
	Success           bool   `json:"success"`
	Pattern           string `json:"pattern"`
	Replacement       string `json:"replacement"`
	OriginalText      string `json:"original_text"`
	ResultText        string `json:"result_text"`
	SubstitutionsMade int    `json:"substitutions_made"`
	Error             string `json:"error,omitempty"`
}

// SplitResponse is the result of a split operation. On failure Parts
// falls back to the original text as a single element.
type SplitResponse struct {
	Success      bool     `json:"success"`
	Pattern      string   `json:"pattern"`
	OriginalText string   `json:"original_text"`
	Parts        []string `json:"parts"`
	SplitsMade   int      `json:"splits_made"`
	Error        string   `json:"error,omitempty"`
}

// ValidateResponse reports pattern validity. The operation itself
// always succeeds; invalidity is communicated via Valid and Error.
type ValidateResponse struct {
	Success bool   `json:"success"`
	Pattern string `json:"pattern"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// FirstMatch finds the leftmost match of pattern in text.
func FirstMatch(pattern string, flags []Flag, text string) MatchResponse {
	c, err := Compile(pattern, flags)
	if err != nil {
		return MatchResponse{Pattern: pattern, Text: text, Error: err.Error()}
	}
	return MatchResponse{
		Success: true,
		Pattern: c.Source(),
		Text:    text,
		Match:   c.FirstMatch(text),
	}
}

// FindAll finds every non-overlapping match of pattern in text.
func FindAll(pattern string, flags []Flag, text string) FindAllResponse {
	c, err := Compile(pattern, flags)
	if err != nil {
		return FindAllResponse{Pattern: pattern, Text: text, Matches: []Match{}, Error: err.Error()}
	}
	matches := c.FindAll(text)
	if matches == nil {
		matches = []Match{}
	}
	return FindAllResponse{
		Success: true,
		Pattern: c.Source(),
		Text:    text,
		Matches: matches,
		Count:   len(matches),
	}
}

// Substitute replaces up to count matches of pattern in text with the
// replacement template (count 0 means all).
func Substitute(pattern string, flags []Flag, replacement, text string, count int) SubstituteResponse {
	resp := SubstituteResponse{
		Pattern:      pattern,
		Replacement:  replacement,
		OriginalText: text,
		ResultText:   text,
	}
	c, err := Compile(pattern, flags)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Pattern = c.Source()
	result, made, err := c.Substitute(replacement, text, count)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	resp.ResultText = result
	resp.SubstitutionsMade = made
	return resp
}

// Split splits text at matches of pattern, keeping at most maxsplit
// splits (0 means unlimited).
func Split(pattern string, flags []Flag, text string, maxsplit int) SplitResponse {
	c, err := Compile(pattern, flags)
	if err != nil {
		return SplitResponse{
			Pattern:      pattern,
			OriginalText: text,
			Parts:        []string{text},
			Error:        err.Error(),
		}
	}
	parts, made := c.Split(text, maxsplit)
	return SplitResponse{
		Success:      true,
		Pattern:      c.Source(),
		OriginalText: text,
		Parts:        parts,
		SplitsMade:   made,
	}
}

// Validate reports whether pattern compiles with no flags. Invalid
// patterns are a successful validation outcome, not an operation
// failure.
func Validate(pattern string) ValidateResponse {
	if _, err := Compile(pattern, nil); err != nil {
		return ValidateResponse{Success: true, Pattern: pattern, Valid: false, Error: err.Error()}
	}
	return ValidateResponse{Success: true, Pattern: pattern, Valid: true}
}
