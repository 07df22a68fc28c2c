package calendar

import "testing"

var jan = []string{"2024-01-07", "2024-01-14", "2024-01-21", "2024-01-28", "2024-02-04"}

func TestBuildEventLookup_SingleWeekEvent(t *testing.T) {
	ev := Event{ID: "e1", TaskID: "t1", StartDate: "2024-01-14", EndDate: "2024-01-14"}
	l := BuildEventLookup([]Event{ev}, jan)

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	c, ok := l.Cell("t1", "2024-01-14")
	if !ok {
		t.Fatal("expected cell for t1/2024-01-14")
	}
	if !c.IsStart || !c.IsEnd || c.Span != 1 {
		t.Errorf("cell = %+v, want start, end, span 1", c)
	}
}

func TestBuildEventLookup_ThreeWeekSpan(t *testing.T) {
	ev := Event{ID: "e1", TaskID: "t1", StartDate: "2024-01-07", EndDate: "2024-01-21"}
	l := BuildEventLookup([]Event{ev}, jan)

	start, ok := l.Cell("t1", "2024-01-07")
	if !ok || !start.IsStart || start.Span != 3 {
		t.Fatalf("start cell = %+v (ok=%v), want IsStart and span 3", start, ok)
	}
	for _, d := range []string{"2024-01-14", "2024-01-21"} {
		c, ok := l.Cell("t1", d)
		if !ok {
			t.Fatalf("missing cell %s", d)
		}
		if c.IsStart || c.Span != 0 {
			t.Errorf("cell %s = %+v, want non-start without span", d, c)
		}
	}
	if end, _ := l.Cell("t1", "2024-01-21"); !end.IsEnd {
		t.Error("last covered week should be the end")
	}
	if _, ok := l.Cell("t1", "2024-01-28"); ok {
		t.Error("week after the event should be empty")
	}
}

func TestBuildEventLookup_EndOutsideWindowCollapses(t *testing.T) {
	ev := Event{ID: "e1", TaskID: "t1", StartDate: "2024-01-28", EndDate: "2024-03-03"}
	l := BuildEventLookup([]Event{ev}, jan)

	c, ok := l.Cell("t1", "2024-01-28")
	if !ok || c.Span != 1 {
		t.Fatalf("start cell = %+v (ok=%v), want span 1", c, ok)
	}
	if next, ok := l.Cell("t1", "2024-02-04"); !ok || next.IsStart {
		t.Errorf("following cell = %+v (ok=%v), want covered non-start", next, ok)
	}
}

func TestBuildEventLookup_ClipAnchorsFirstVisibleWeek(t *testing.T) {
	ev := Event{ID: "e1", TaskID: "t1", StartDate: "2023-12-20", EndDate: "2024-03-03"}
	l := BuildEventLookupWithPolicy([]Event{ev}, jan, SpanClip)

	c, ok := l.Cell("t1", "2024-01-07")
	if !ok || !c.Anchor || c.Span != len(jan) {
		t.Fatalf("anchor = %+v (ok=%v), want span %d", c, ok, len(jan))
	}
	if c.IsStart {
		t.Error("clipped anchor is not the event start")
	}

	collapsed := BuildEventLookup([]Event{ev}, jan)
	c, _ = collapsed.Cell("t1", "2024-01-07")
	if c.Anchor || c.Span != 0 {
		t.Errorf("collapse policy should not anchor a clipped start, got %+v", c)
	}
}

func TestBuildEventLookup_FirstOverlappingEventWins(t *testing.T) {
	a := Event{ID: "a", TaskID: "t1", StartDate: "2024-01-07", EndDate: "2024-01-21"}
	b := Event{ID: "b", TaskID: "t1", StartDate: "2024-01-14", EndDate: "2024-01-28"}
	l := BuildEventLookup([]Event{a, b}, jan)

	if c, _ := l.Cell("t1", "2024-01-14"); c.Event.ID != "a" {
		t.Errorf("shared cell owned by %q, want a", c.Event.ID)
	}
	if c, _ := l.Cell("t1", "2024-01-28"); c.Event.ID != "b" || c.IsStart {
		t.Errorf("2024-01-28 = %+v, want b non-start", c)
	}
}

func TestBuildEventLookup_UnknownCells(t *testing.T) {
	var empty Lookup
	if _, ok := empty.Cell("t", "2024-01-07"); ok {
		t.Error("zero Lookup should have no cells")
	}

	l := BuildEventLookup(nil, jan)
	if _, ok := l.Cell("nope", "1999-01-01"); ok {
		t.Error("unknown task/date should miss")
	}
}

func TestSpanFrom(t *testing.T) {
	index := indexDates(jan)
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-07", "2024-01-07", 1},
		{"2024-01-07", "2024-02-04", 5},
		{"2024-01-14", "2024-01-28", 3},
		{"2024-01-28", "2024-01-14", 1},
		{"2023-01-01", "2024-01-14", 1},
		{"2024-01-14", "2025-01-01", 1},
	}
	for _, tc := range cases {
		if got := spanFrom(index, tc.start, tc.end); got != tc.want {
			t.Errorf("spanFrom(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestParseSpanPolicy(t *testing.T) {
	if ParseSpanPolicy("clip") != SpanClip {
		t.Error("clip should parse")
	}
	if ParseSpanPolicy("collapse") != SpanCollapse {
		t.Error("collapse should parse")
	}
	if ParseSpanPolicy("") != DefaultSpanPolicy || ParseSpanPolicy("wat") != DefaultSpanPolicy {
		t.Error("unknown names should fall back to the default")
	}
}
