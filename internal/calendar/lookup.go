package calendar

// SpanPolicy decides how wide an event block is drawn when the event runs
// past the visible weeks.
type SpanPolicy string

const (
	// SpanCollapse anchors blocks only on the event's start week. An end
	// date outside the visible weeks collapses the block to one cell.
	SpanCollapse SpanPolicy = "collapse"

	// SpanClip anchors each block on the first visible week the event
	// covers and stretches it to the last visible week it covers.
	SpanClip SpanPolicy = "clip"
)

// DefaultSpanPolicy is the policy used by BuildEventLookup.
const DefaultSpanPolicy = SpanCollapse

// ParseSpanPolicy returns the named policy, or DefaultSpanPolicy for an
// unknown name.
func ParseSpanPolicy(name string) SpanPolicy {
	switch SpanPolicy(name) {
	case SpanClip:
		return SpanClip
	case SpanCollapse:
		return SpanCollapse
	}
	return DefaultSpanPolicy
}

// CellKey addresses one grid cell.
type CellKey struct {
	TaskID string
	Date   string
}

// CellInfo describes the event occupying a cell. Span is set only on the
// anchor cell, where the block is drawn; under SpanCollapse the anchor is
// always the start cell.
type CellInfo struct {
	Event   Event `json:"event"`
	IsStart bool  `json:"is_start"`
	IsEnd   bool  `json:"is_end"`
	Anchor  bool  `json:"anchor"`
	Span    int   `json:"span"`
}

// Lookup maps (task, week) cells to the event occupying them.
type Lookup struct {
	cells map[CellKey]CellInfo
}

// Cell returns the event occupying the cell. Unknown tasks or dates return
// false rather than failing.
func (l Lookup) Cell(taskID, date string) (CellInfo, bool) {
	if l.cells == nil {
		return CellInfo{}, false
	}
	c, ok := l.cells[CellKey{TaskID: taskID, Date: date}]
	return c, ok
}

// Len returns the number of occupied cells.
func (l Lookup) Len() int {
	return len(l.cells)
}

// BuildEventLookup maps events onto weekDates using DefaultSpanPolicy.
func BuildEventLookup(events []Event, weekDates []string) Lookup {
	return BuildEventLookupWithPolicy(events, weekDates, DefaultSpanPolicy)
}

// BuildEventLookupWithPolicy records a CellInfo for every week date that
// falls inside an event's inclusive [StartDate, EndDate] range. When two
// events of the same task overlap, the earlier event in input order keeps
// the shared cells.
func BuildEventLookupWithPolicy(events []Event, weekDates []string, policy SpanPolicy) Lookup {
	index := indexDates(weekDates)
	l := Lookup{cells: make(map[CellKey]CellInfo)}

	for _, ev := range events {
		first, last := -1, -1
		for i, d := range weekDates {
			if d < ev.StartDate || d > ev.EndDate {
				continue
			}
			key := CellKey{TaskID: ev.TaskID, Date: d}
			if _, taken := l.cells[key]; taken {
				continue
			}
			l.cells[key] = CellInfo{
				Event:   ev,
				IsStart: d == ev.StartDate,
				IsEnd:   d == ev.EndDate,
			}
			if first < 0 {
				first = i
			}
			last = i
		}
		if first < 0 {
			continue
		}

		switch policy {
		case SpanClip:
			key := CellKey{TaskID: ev.TaskID, Date: weekDates[first]}
			c := l.cells[key]
			c.Anchor = true
			c.Span = last - first + 1
			l.cells[key] = c
		default:
			key := CellKey{TaskID: ev.TaskID, Date: ev.StartDate}
			c, ok := l.cells[key]
			if !ok || c.Event.ID != ev.ID || !c.IsStart {
				continue
			}
			c.Anchor = true
			c.Span = spanFrom(index, ev.StartDate, ev.EndDate)
			l.cells[key] = c
		}
	}
	return l
}

// spanFrom returns the number of week columns from start to end inclusive,
// or 1 when either date is missing from index or the range is inverted.
func spanFrom(index map[string]int, start, end string) int {
	si, ok := index[start]
	if !ok {
		return 1
	}
	ei, ok := index[end]
	if !ok || ei < si {
		return 1
	}
	return ei - si + 1
}

func indexDates(weekDates []string) map[string]int {
	index := make(map[string]int, len(weekDates))
	for i, d := range weekDates {
		if _, dup := index[d]; !dup {
			index[d] = i
		}
	}
	return index
}
