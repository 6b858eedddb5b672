package desktop

import "strings"

// FilterResult is the outcome of narrowing a snapshot by a title query.
type FilterResult struct {
	// Matches and MinimizedMatches are the windows whose titles contain the
	// query, in the snapshot's visibility order.
	Matches          []Window
	MinimizedMatches []Window

	// HighlightIndex is the suggested highlight into the combined
	// Matches+MinimizedMatches list: 0 when anything matched, -1 otherwise.
	HighlightIndex int
}

// Empty reports whether the query matched nothing.
func (r FilterResult) Empty() bool {
	return len(r.Matches) == 0 && len(r.MinimizedMatches) == 0
}

// Count is the total number of matched windows.
func (r FilterResult) Count() int {
	return len(r.Matches) + len(r.MinimizedMatches)
}

// At returns the matched window at a combined index, normal matches first.
func (r FilterResult) At(i int) (Window, bool) {
	if i < 0 {
		return Window{}, false
	}
	if i < len(r.Matches) {
		return r.Matches[i], true
	}
	i -= len(r.Matches)
	if i < len(r.MinimizedMatches) {
		return r.MinimizedMatches[i], true
	}
	return Window{}, false
}

// Filter narrows the snapshot's full window set by a case-insensitive title
// substring. The search runs over All and AllMinimized so that fully occluded
// windows remain findable by name even though plain cycling skips them.
//
// An empty query means "no filter active" and matches nothing; search only
// engages once at least one character has been typed.
func (s Snapshot) Filter(query string) FilterResult {
	res := FilterResult{HighlightIndex: -1}
	q := strings.ToLower(query)
	if q == "" {
		return res
	}

	for _, w := range s.All {
		if strings.Contains(strings.ToLower(w.Title), q) {
			res.Matches = append(res.Matches, w)
		}
	}
	for _, w := range s.AllMinimized {
		if strings.Contains(strings.ToLower(w.Title), q) {
			res.MinimizedMatches = append(res.MinimizedMatches, w)
		}
	}
	if !res.Empty() {
		res.HighlightIndex = 0
	}
	return res
}
