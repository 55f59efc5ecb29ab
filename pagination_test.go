package rolecall_test

import (
	"fmt"
	"testing"

	"github.com/mktierney/rolecall"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("role-%03d", i)
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		start       int
		wantStart   int
		wantLen     int
		wantHasPrev bool
		wantHasNext bool
	}{
		{name: "empty list", total: 0, start: 0, wantStart: 0, wantLen: 0},
		{name: "single short page", total: 5, start: 0, wantStart: 0, wantLen: 5},
		{name: "exactly one page", total: 23, start: 0, wantStart: 0, wantLen: 23},
		{name: "first of two pages", total: 24, start: 0, wantStart: 0, wantLen: 23, wantHasNext: true},
		{name: "second of two pages", total: 24, start: 23, wantStart: 23, wantLen: 1, wantHasPrev: true},
		{name: "middle page", total: 70, start: 23, wantStart: 23, wantLen: 23, wantHasPrev: true, wantHasNext: true},
		{name: "negative start clamps to first page", total: 24, start: -23, wantStart: 0, wantLen: 23, wantHasNext: true},
		{name: "start past end clamps to last page", total: 24, start: 46, wantStart: 23, wantLen: 1, wantHasPrev: true},
		{name: "unaligned start snaps to page boundary", total: 70, start: 30, wantStart: 23, wantLen: 23, wantHasPrev: true, wantHasNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := rolecall.Paginate(names(tt.total), tt.start)

			if w.Start != tt.wantStart {
				t.Errorf("Start = %d, want %d", w.Start, tt.wantStart)
			}
			if len(w.Entries) != tt.wantLen {
				t.Errorf("len(Entries) = %d, want %d", len(w.Entries), tt.wantLen)
			}
			if w.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", w.HasPrev, tt.wantHasPrev)
			}
			if w.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", w.HasNext, tt.wantHasNext)
			}
			if w.Start%rolecall.PageSize != 0 {
				t.Errorf("Start = %d is not page-aligned", w.Start)
			}
		})
	}
}

func TestPaginateCoversEveryEntryExactlyOnce(t *testing.T) {
	entries := names(70)

	seen := make(map[string]int)
	pages := 0
	for start := 0; ; start += rolecall.PageSize {
		w := rolecall.Paginate(entries, start)
		pages++
		for _, e := range w.Entries {
			seen[e]++
		}
		if !w.HasNext {
			break
		}
	}

	if pages != rolecall.PageCount(len(entries)) {
		t.Errorf("walked %d pages, PageCount = %d", pages, rolecall.PageCount(len(entries)))
	}
	if len(seen) != len(entries) {
		t.Fatalf("saw %d distinct entries, want %d", len(seen), len(entries))
	}
	for e, n := range seen {
		if n != 1 {
			t.Errorf("entry %q appeared %d times, want 1", e, n)
		}
	}
}

func TestPageNumber(t *testing.T) {
	tests := []struct {
		start int
		want  int
	}{
		{start: 0, want: 1},
		{start: 23, want: 2},
		{start: 46, want: 3},
		{start: -5, want: 1},
	}

	for _, tt := range tests {
		if got := rolecall.PageNumber(tt.start); got != tt.want {
			t.Errorf("PageNumber(%d) = %d, want %d", tt.start, got, tt.want)
		}
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{total: 0, want: 1},
		{total: 1, want: 1},
		{total: 23, want: 1},
		{total: 24, want: 2},
		{total: 46, want: 2},
		{total: 47, want: 3},
	}

	for _, tt := range tests {
		if got := rolecall.PageCount(tt.total); got != tt.want {
			t.Errorf("PageCount(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
