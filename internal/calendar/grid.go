package calendar

import "time"

// UncategorizedTasks labels tasks with a blank category.
const UncategorizedTasks = "Uncategorized"

// WeekColumn is one column header of the grid.
type WeekColumn struct {
	Date  string    `json:"date"`
	Class WeekClass `json:"class"`
}

// GridCell is either an event block spanning Span columns or an empty
// single column. Covered marks an empty cell that lies inside an event whose
// block is not drawn in this row.
type GridCell struct {
	Date    string `json:"date"`
	Span    int    `json:"span"`
	Event   *Event `json:"event,omitempty"`
	IsStart bool   `json:"is_start,omitempty"`
	IsEnd   bool   `json:"is_end,omitempty"`
	Covered bool   `json:"covered,omitempty"`
}

// GridRow is one task with its rendered cells. The spans of a row always
// add up to the number of week columns.
type GridRow struct {
	Task  Task       `json:"task"`
	Cells []GridCell `json:"cells"`
}

// Grid is a render-ready timeline.
type Grid struct {
	Weeks  []WeekColumn  `json:"weeks"`
	Months []MonthHeader `json:"months"`
	Rows   []GridRow     `json:"rows"`
}

// BuildGrid lays tasks and events out on weekDates relative to now.
// Events for tasks not in tasks are ignored.
func BuildGrid(tasks []Task, events []Event, weekDates []string, now time.Time, policy SpanPolicy) Grid {
	lookup := BuildEventLookupWithPolicy(events, weekDates, policy)

	g := Grid{
		Weeks:  make([]WeekColumn, 0, len(weekDates)),
		Months: GroupByMonth(weekDates),
		Rows:   make([]GridRow, 0, len(tasks)),
	}
	for _, d := range weekDates {
		g.Weeks = append(g.Weeks, WeekColumn{Date: d, Class: ClassifyWeekDate(d, now)})
	}

	for _, task := range tasks {
		row := GridRow{Task: task, Cells: []GridCell{}}
		for i := 0; i < len(weekDates); {
			d := weekDates[i]
			c, ok := lookup.Cell(task.ID, d)
			if ok && c.Anchor {
				span := c.Span
				if span < 1 {
					span = 1
				}
				if i+span > len(weekDates) {
					span = len(weekDates) - i
				}
				ev := c.Event
				endCell, _ := lookup.Cell(task.ID, weekDates[i+span-1])
				row.Cells = append(row.Cells, GridCell{
					Date:    d,
					Span:    span,
					Event:   &ev,
					IsStart: c.IsStart,
					IsEnd:   endCell.IsEnd && endCell.Event.ID == ev.ID,
				})
				i += span
				continue
			}
			row.Cells = append(row.Cells, GridCell{Date: d, Span: 1, Covered: ok})
			i++
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// TaskCategory groups tasks sharing a category.
type TaskCategory struct {
	Category string `json:"category"`
	Tasks    []Task `json:"tasks"`
}

// GroupTasksByCategory groups tasks by category in encounter order.
func GroupTasksByCategory(tasks []Task) []TaskCategory {
	index := make(map[string]int)
	var out []TaskCategory
	for _, t := range tasks {
		cat := t.Category
		if cat == "" {
			cat = UncategorizedTasks
		}
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, TaskCategory{Category: cat})
		}
		out[i].Tasks = append(out[i].Tasks, t)
	}
	return out
}
