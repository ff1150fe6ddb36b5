package pattern

import (
	"time"

	"github.com/queryx/queryd/internal/clock"
)

// Bulk operations apply one pattern to many texts. The pattern is
// compiled exactly once per call; a compilation failure short-circuits
// the whole batch with an empty results list, while failures after
// compilation are recorded per item and never abort the rest of the
// batch. Reported processing time covers the whole call including
// compilation.

// BulkMatchResult is the first-match outcome for one text.
type BulkMatchResult struct {
	TextIndex int    `json:"text_index"`
	Text      string `json:"text"`
	Success   bool   `json:"success"`
	Match     *Match `json:"match,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BulkMatchResponse aggregates a bulk first-match call.
type BulkMatchResponse struct {
	Success              bool              `json:"success"`
	Pattern              string            `json:"pattern"`
	TotalTexts           int               `json:"total_texts"`
	SuccessfulOperations int               `json:"successful_operations"`
	FailedOperations     int               `json:"failed_operations"`
	ProcessingTimeMS     float64           `json:"processing_time_ms"`
	Results              []BulkMatchResult `json:"results"`
	Error                string            `json:"error,omitempty"`
}

// BulkFindAllResult is the find-all outcome for one text.
type BulkFindAllResult struct {
	TextIndex int     `json:"text_index"`
	Text      string  `json:"text"`
	Success   bool    `json:"success"`
	Matches   []Match `json:"matches"`
	Count     int     `json:"count"`
	Error     string  `json:"error,omitempty"`
}

// BulkFindAllResponse aggregates a bulk find-all call.
type BulkFindAllResponse struct {
	Success              bool                `json:"success"`
	Pattern              string              `json:"pattern"`
	TotalTexts           int                 `json:"total_texts"`
	SuccessfulOperations int                 `json:"successful_operations"`
	FailedOperations     int                 `json:"failed_operations"`
	ProcessingTimeMS     float64             `json:"processing_time_ms"`
	Results              []BulkFindAllResult `json:"results"`
	TotalMatches         int                 `json:"total_matches"`
	Error                string              `json:"error,omitempty"`
}

// BulkSubstituteResult is the substitute outcome for one text. On
// failure ResultText falls back to the original text.
type BulkSubstituteResult struct {
	TextIndex         int    `json:"text_index"`
	Text              string `json:"text"`
	Success           bool   `json:"success"`
	OriginalText      string `json:"original_text"`
	ResultText        string `json:"result_text"`
	SubstitutionsMade int    `json:"substitutions_made"`
	Error             string `json:"error,omitempty"`
}

// BulkSubstituteResponse aggregates a bulk substitute call.
type BulkSubstituteResponse struct {
	Success              bool                   `json:"success"`
	Pattern              string                 `json:"pattern"`
	Replacement          string                 `json:"replacement"`
	TotalTexts           int                    `json:"total_texts"`
	SuccessfulOperations int                    `json:"successful_operations"`
	FailedOperations     int                    `json:"failed_operations"`
	ProcessingTimeMS     float64                `json:"processing_time_ms"`
	Results              []BulkSubstituteResult `json:"results"`
	TotalSubstitutions   int                    `json:"total_substitutions"`
	Error                string                 `json:"error,omitempty"`
}

// BulkSplitResult is the split outcome for one text. On failure Parts
// falls back to the original text as a single element.
type BulkSplitResult struct {
	TextIndex  int      `json:"text_index"`
	Text       string   `json:"text"`
	Success    bool     `json:"success"`
	Parts      []string `json:"parts"`
	SplitsMade int      `json:"splits_made"`
	Error      string   `json:"error,omitempty"`
}

// BulkSplitResponse aggregates a bulk split call.
type BulkSplitResponse struct {
	Success              bool              `json:"success"`
	Pattern              string            `json:"pattern"`
	TotalTexts           int               `json:"total_texts"`
	SuccessfulOperations int               `json:"successful_operations"`
	FailedOperations     int               `json:"failed_operations"`
	ProcessingTimeMS     float64           `json:"processing_time_ms"`
	Results              []BulkSplitResult `json:"results"`
	TotalSplits          int               `json:"total_splits"`
	Error                string            `json:"error,omitempty"`
}

func elapsedMS(start time.Time) float64 {
	return float64(clock.Since(start)) / float64(time.Millisecond)
}

// BulkFirstMatch applies a first-match to every text.
func BulkFirstMatch(pattern string, flags []Flag, texts []string) BulkMatchResponse {
	start := clock.Now()

	c, err := Compile(pattern, flags)
	if err != nil {
		return BulkMatchResponse{
			Pattern:          pattern,
			TotalTexts:       len(texts),
			FailedOperations: len(texts),
			ProcessingTimeMS: elapsedMS(start),
			Results:          []BulkMatchResult{},
			Error:            err.Error(),
		}
	}

	resp := BulkMatchResponse{
		Success:    true,
		Pattern:    c.Source(),
		TotalTexts: len(texts),
		Results:    make([]BulkMatchResult, 0, len(texts)),
	}
	for i, text := range texts {
		resp.Results = append(resp.Results, BulkMatchResult{
			TextIndex: i,
			Text:      text,
			Success:   true,
			Match:     c.FirstMatch(text),
		})
		resp.SuccessfulOperations++
	}
	resp.ProcessingTimeMS = elapsedMS(start)
	return resp
}

// BulkFindAll applies a find-all to every text.
func BulkFindAll(pattern string, flags []Flag, texts []string) BulkFindAllResponse {
	start := clock.Now()

	c, err := Compile(pattern, flags)
	if err != nil {
		return BulkFindAllResponse{
			Pattern:          pattern,
			TotalTexts:       len(texts),
			FailedOperations: len(texts),
			ProcessingTimeMS: elapsedMS(start),
			Results:          []BulkFindAllResult{},
			Error:            err.Error(),
		}
	}

	resp := BulkFindAllResponse{
		Success:    true,
		Pattern:    c.Source(),
		TotalTexts: len(texts),
		Results:    make([]BulkFindAllResult, 0, len(texts)),
	}
	for i, text := range texts {
		matches := c.FindAll(text)
		if matches == nil {
			matches = []Match{}
		}
		resp.Results = append(resp.Results, BulkFindAllResult{
			TextIndex: i,
			Text:      text,
			Success:   true,
			Matches:   matches,
			Count:     len(matches),
		})
		resp.SuccessfulOperations++
		resp.TotalMatches += len(matches)
	}
	resp.ProcessingTimeMS = elapsedMS(start)
	return resp
}

// BulkSubstitute applies a substitution to every text. The replacement
// template is parsed once; an invalid template fails every item
// individually since the failure is per-application, not a pattern
// compilation failure.
func BulkSubstitute(pattern string, flags []Flag, replacement string, texts []string, count int) BulkSubstituteResponse {
	start := clock.Now()

	c, err := Compile(pattern, flags)
	if err != nil {
		return BulkSubstituteResponse{
			Pattern:          pattern,
			Replacement:      replacement,
			TotalTexts:       len(texts),
			FailedOperations: len(texts),
			ProcessingTimeMS: elapsedMS(start),
			Results:          []BulkSubstituteResult{},
			Error:            err.Error(),
		}
	}

	resp := BulkSubstituteResponse{
		Success:     true,
		Pattern:     c.Source(),
		Replacement: replacement,
		TotalTexts:  len(texts),
		Results:     make([]BulkSubstituteResult, 0, len(texts)),
	}
	tmpl, tmplErr := c.parseTemplate(replacement)
	for i, text := range texts {
		if tmplErr != nil {
			resp.Results = append(resp.Results, BulkSubstituteResult{
				TextIndex:    i,
				Text:         text,
				OriginalText: text,
				ResultText:   text,
				Error:        tmplErr.Error(),
			})
			resp.FailedOperations++
			continue
		}
		result, made := c.substituteParsed(tmpl, text, count)
		resp.Results = append(resp.Results, BulkSubstituteResult{
			TextIndex:         i,
			Text:              text,
			Success:           true,
			OriginalText:      text,
			ResultText:        result,
			SubstitutionsMade: made,
		})
		resp.SuccessfulOperations++
		resp.TotalSubstitutions += made
	}
	resp.ProcessingTimeMS = elapsedMS(start)
	return resp
}

// BulkSplit applies a split to every text.
func BulkSplit(pattern string, flags []Flag, texts []string, maxsplit int) BulkSplitResponse {
	start := clock.Now()

	c, err := Compile(pattern, flags)
	if err != nil {
		return BulkSplitResponse{
			Pattern:          pattern,
			TotalTexts:       len(texts),
			FailedOperations: len(texts),
			ProcessingTimeMS: elapsedMS(start),
			Results:          []BulkSplitResult{},
			Error:            err.Error(),
		}
	}

	resp := BulkSplitResponse{
		Success:    true,
		Pattern:    c.Source(),
		TotalTexts: len(texts),
		Results:    make([]BulkSplitResult, 0, len(texts)),
	}
	for i, text := range texts {
		parts, made := c.Split(text, maxsplit)
		resp.Results = append(resp.Results, BulkSplitResult{
			TextIndex:  i,
			Text:       text,
			Success:    true,
			Parts:      parts,
			SplitsMade: made,
		})
		resp.SuccessfulOperations++
		resp.TotalSplits += made
	}
	resp.ProcessingTimeMS = elapsedMS(start)
	return resp
}
