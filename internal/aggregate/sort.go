package aggregate

import (
	"sort"
	"strings"

	"github.com/hyperengineering/opsboard/internal/record"
)

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 25

// SortSpec describes a single-column table sort.
type SortSpec struct {
	Field   string `json:"field"`
	Desc    bool   `json:"desc"`
	Numeric bool   `json:"numeric"`
}

// SortRecords returns a stably sorted copy of records. Numeric sorts coerce
// malformed values to 0; text sorts are case-insensitive. An empty field
// returns the records in input order.
func SortRecords(records []record.Record, spec SortSpec) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	if strings.TrimSpace(spec.Field) == "" {
		return out
	}

	less := func(a, b record.Record) bool {
		if spec.Numeric {
			return a.Number(spec.Field) < b.Number(spec.Field)
		}
		return strings.ToLower(a.String(spec.Field)) < strings.ToLower(b.String(spec.Field))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if spec.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Page is one slice of a paginated record list.
type Page struct {
	Items      []record.Record `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// Paginate returns the 1-based page of records. Pages past the end are
// empty rather than an error.
func Paginate(records []record.Record, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(records)
	pages := total / size
	if total%size != 0 {
		pages++
	}

	p := Page{
		Items:      []record.Record{},
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
	}
	if page > pages {
		return p
	}
	start := (page - 1) * size
	end := total
	if total-start > size {
		end = start + size
	}
	p.Items = records[start:end]
	return p
}
