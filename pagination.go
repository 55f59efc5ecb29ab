package rolecall

// PageSize is the number of selectable entries shown on one menu page. Two
// slots of the platform's 25-option component limit are reserved for the
// Previous/Next entries.
const PageSize = 23

// Window is one page of a paginated list. Start is the absolute offset of
// the first entry and is always a multiple of PageSize.
type Window struct {
	Start   int
	Entries []string
	HasPrev bool
	HasNext bool
}

// Paginate slices entries into the page containing start. A start that is
// negative, past the end, or not page-aligned is clamped to the nearest
// valid page.
func Paginate(entries []string, start int) Window {
	if start < 0 {
		start = 0
	}
	start -= start % PageSize
	for start > 0 && start >= len(entries) {
		start -= PageSize
	}

	end := start + PageSize
	if end > len(entries) {
		end = len(entries)
	}

	return Window{
		Start:   start,
		Entries: entries[start:end],
		HasPrev: start > 0,
		HasNext: end < len(entries),
	}
}

// PageNumber converts a window start offset to a 1-based page number.
func PageNumber(start int) int {
	if start < 0 {
		return 1
	}
	return start/PageSize + 1
}

// PageCount is the number of pages needed to show n entries. An empty list
// still occupies one page (the placeholder page).
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}
