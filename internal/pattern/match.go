package pattern

// Group is one captured group of a match. Group is nil and the span is
// -1/-1 when the group did not participate in the match.
type Group struct {
	Group *string `json:"group"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// Match is one successful pattern application. Offsets are 0-based byte
// offsets into the input text, end exclusive.
type Match struct {
	Match  string  `json:"match"`
	Groups []Group `json:"groups"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// matchFromIndex builds a Match from the engine's submatch index pairs.
// Group spans come straight from the per-group index slots, so optional
// groups before a participating one cannot shift later spans.
func matchFromIndex(text string, idx []int) Match {
	groups := make([]Group, 0, len(idx)/2-1)
	for i := 2; i < len(idx); i += 2 {
		start, end := idx[i], idx[i+1]
		if start < 0 {
			groups = append(groups, Group{Group: nil, Start: -1, End: -1})
			continue
		}
		captured := text[start:end]
		groups = append(groups, Group{Group: &captured, Start: start, End: end})
	}
	return Match{
		Match:  text[idx[0]:idx[1]],
		Groups: groups,
		Start:  idx[0],
		End:    idx[1],
	}
}
