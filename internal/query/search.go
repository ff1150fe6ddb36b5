package query

import (
	"time"

	"github.com/queryx/queryd/internal/clock"
)

// Result is the outcome of one expression in a multi-expression call.
type Result struct {
	JSONPath     string `json:"jsonpath"`
	Success      bool   `json:"success"`
	MatchesFound int    `json:"matches_found"`
	Result       any    `json:"result"`
	Error        string `json:"error,omitempty"`
}

// SearchResponse is the outcome of one expression against inline JSON.
type SearchResponse struct {
	Success          bool   `json:"success"`
	JSONPath         string `json:"jsonpath"`
	MatchesFound     int    `json:"matches_found"`
	Result           any    `json:"result"`
	OriginalDataSize int    `json:"original_data_size"`
	Error            string `json:"error,omitempty"`
}

// LoadAndSearchResponse is the outcome of one expression against a
// file document. FileSizeBytes is nil when the file could not be read.
type LoadAndSearchResponse struct {
	Success       bool   `json:"success"`
	JSONPath      string `json:"jsonpath"`
	FilePath      string `json:"file_path"`
	MatchesFound  int    `json:"matches_found"`
	Result        any    `json:"result"`
	FileSizeBytes *int64 `json:"file_size_bytes"`
	Error         string `json:"error,omitempty"`
}

// SearchAllResponse aggregates many expressions against inline JSON.
// The document is parsed exactly once; a parse failure fails every
// expression identically with an empty results list.
type SearchAllResponse struct {
	Success            bool     `json:"success"`
	TotalJSONPaths     int      `json:"total_jsonpaths"`
	SuccessfulSearches int      `json:"successful_searches"`
	FailedSearches     int      `json:"failed_searches"`
	ProcessingTimeMS   float64  `json:"processing_time_ms"`
	Results            []Result `json:"results"`
	OriginalDataSize   int      `json:"original_data_size"`
	Error              string   `json:"error,omitempty"`
}

// LoadAndSearchAllResponse aggregates many expressions against a file
// document. The file is loaded and parsed exactly once.
type LoadAndSearchAllResponse struct {
	Success            bool     `json:"success"`
	FilePath           string   `json:"file_path"`
	TotalJSONPaths     int      `json:"total_jsonpaths"`
	SuccessfulSearches int      `json:"successful_searches"`
	FailedSearches     int      `json:"failed_searches"`
	ProcessingTimeMS   float64  `json:"processing_time_ms"`
	Results            []Result `json:"results"`
	FileSizeBytes      *int64   `json:"file_size_bytes"`
	Error              string   `json:"error,omitempty"`
}

func elapsedMS(start time.Time) float64 {
	return float64(clock.Since(start)) / float64(time.Millisecond)
}

// Search evaluates one expression against inline JSON data.
func Search(jsonData, expr string) SearchResponse {
	resp := SearchResponse{
		JSONPath:         expr,
		OriginalDataSize: len(jsonData),
	}
	document, err := ParseDocument(jsonData)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	values, err := evaluate(document, expr)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	resp.MatchesFound = len(values)
	resp.Result = Collapse(values)
	return resp
}

// LoadAndSearch loads a JSON file and evaluates one expression against it.
func LoadAndSearch(path, expr string) LoadAndSearchResponse {
	resp := LoadAndSearchResponse{
		JSONPath: expr,
		FilePath: path,
	}
	document, size, err := LoadDocument(path)
	if size > 0 {
		resp.FileSizeBytes = &size
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.FileSizeBytes = &size

	values, err := evaluate(document, expr)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	resp.MatchesFound = len(values)
	resp.Result = Collapse(values)
	return resp
}

// evaluateAll runs every expression independently against one already
// parsed document. One expression's failure never prevents evaluating
// the rest.
func evaluateAll(document any, exprs []string) (results []Result, succeeded, failed int) {
	results = make([]Result, 0, len(exprs))
	for _, expr := range exprs {
		values, err := evaluate(document, expr)
		if err != nil {
			results = append(results, Result{JSONPath: expr, Error: err.Error()})
			failed++
			continue
		}
		results = append(results, Result{
			JSONPath:     expr,
			Success:      true,
			MatchesFound: len(values),
			Result:       Collapse(values),
		})
		succeeded++
	}
	return results, succeeded, failed
}

// SearchAll evaluates every expression against inline JSON data,
// parsing the document once for the whole batch.
func SearchAll(jsonData string, exprs []string) SearchAllResponse {
	start := clock.Now()
	resp := SearchAllResponse{
		TotalJSONPaths:   len(exprs),
		OriginalDataSize: len(jsonData),
		Results:          []Result{},
	}
	document, err := ParseDocument(jsonData)
	if err != nil {
		resp.FailedSearches = len(exprs)
		resp.Error = err.Error()
		resp.ProcessingTimeMS = elapsedMS(start)
		return resp
	}

	resp.Results, resp.SuccessfulSearches, resp.FailedSearches = evaluateAll(document, exprs)
	resp.Success = true
	resp.ProcessingTimeMS = elapsedMS(start)
	return resp
}

// LoadAndSearchAll loads a JSON file once and evaluates every
// expression against it.
func LoadAndSearchAll(path string, exprs []string) LoadAndSearchAllResponse {
	start := clock.Now()
	resp := LoadAndSearchAllResponse{
		FilePath:       path,
		TotalJSONPaths: len(exprs),
		Results:        []Result{},
	}
	document, size, err := LoadDocument(path)
	if size > 0 {
		resp.FileSizeBytes = &size
	}
	if err != nil {
		resp.FailedSearches = len(exprs)
		resp.Error = err.Error()
		resp.ProcessingTimeMS = elapsedMS(start)
		return resp
	}
	resp.FileSizeBytes = &size

	resp.Results, resp.SuccessfulSearches, resp.FailedSearches = evaluateAll(document, exprs)
	resp.Success = true
	resp.ProcessingTimeMS = elapsedMS(start)
	return resp
}
