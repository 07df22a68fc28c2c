package calendar

import (
	"testing"
	"time"
)

func TestBuildGrid(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Task: "Foundations", Category: "Site"},
		{ID: "t2", Task: "Framing", Category: "Site"},
	}
	events := []Event{
		{ID: "e1", TaskID: "t1", StartDate: "2024-01-14", EndDate: "2024-01-28", Label: "pour"},
		{ID: "e2", TaskID: "ghost", StartDate: "2024-01-07", EndDate: "2024-01-07"},
	}
	now := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)

	g := BuildGrid(tasks, events, jan, now, SpanCollapse)

	if len(g.Weeks) != len(jan) {
		t.Fatalf("weeks = %d, want %d", len(g.Weeks), len(jan))
	}
	if g.Weeks[0].Class != WeekPast || g.Weeks[1].Class != WeekCurrent || g.Weeks[2].Class != WeekFuture {
		t.Errorf("week classes = %+v", g.Weeks)
	}
	if len(g.Months) != 2 {
		t.Errorf("months = %+v, want Jan and Feb", g.Months)
	}
	if len(g.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(g.Rows))
	}

	r1 := g.Rows[0]
	if len(r1.Cells) != 3 {
		t.Fatalf("row 1 cells = %+v, want empty, block, empty", r1.Cells)
	}
	block := r1.Cells[1]
	if block.Event == nil || block.Event.ID != "e1" || block.Span != 3 || !block.IsStart || !block.IsEnd {
		t.Errorf("block = %+v", block)
	}
	for _, row := range g.Rows {
		total := 0
		for _, c := range row.Cells {
			total += c.Span
		}
		if total != len(jan) {
			t.Errorf("row %s spans %d columns, want %d", row.Task.ID, total, len(jan))
		}
	}
	for _, c := range g.Rows[1].Cells {
		if c.Event != nil {
			t.Errorf("row 2 should be empty, got %+v", c)
		}
	}
}

func TestBuildGrid_CoveredCellsWithoutAnchor(t *testing.T) {
	tasks := []Task{{ID: "t1"}}
	events := []Event{{ID: "e1", TaskID: "t1", StartDate: "2023-12-01", EndDate: "2024-01-14"}}

	g := BuildGrid(tasks, events, jan, time.Now(), SpanCollapse)
	cells := g.Rows[0].Cells
	if len(cells) != len(jan) {
		t.Fatalf("cells = %d, want %d", len(cells), len(jan))
	}
	if !cells[0].Covered || !cells[1].Covered || cells[2].Covered {
		t.Errorf("covered flags = %+v", cells)
	}

	clipped := BuildGrid(tasks, events, jan, time.Now(), SpanClip)
	cells = clipped.Rows[0].Cells
	if cells[0].Event == nil || cells[0].Span != 2 || cells[0].IsStart || !cells[0].IsEnd {
		t.Errorf("clipped block = %+v", cells[0])
	}
}

func TestGroupTasksByCategory(t *testing.T) {
	tasks := []Task{
		{ID: "1", Category: "Design"},
		{ID: "2", Category: ""},
		{ID: "3", Category: "Design"},
		{ID: "4", Category: "Build"},
	}
	got := GroupTasksByCategory(tasks)
	if len(got) != 3 {
		t.Fatalf("categories = %+v", got)
	}
	if got[0].Category != "Design" || len(got[0].Tasks) != 2 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Category != UncategorizedTasks {
		t.Errorf("second = %q, want %q", got[1].Category, UncategorizedTasks)
	}
	if got[2].Category != "Build" {
		t.Errorf("third = %q", got[2].Category)
	}
}
