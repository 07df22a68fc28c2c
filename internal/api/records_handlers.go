package api

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/types"
	"github.com/hyperengineering/opsboard/internal/validation"
)

// MaxPageSize caps the page_size query parameter.
const MaxPageSize = 500

// Query parameter prefixes for per-field record filters.
const (
	filterEq   = "eq."
	filterMin  = "min."
	filterMax  = "max."
	filterFrom = "from."
	filterTo   = "to."
)

// recordQuery is a parsed GET /records query string.
type recordQuery struct {
	predicates []aggregate.Predicate
	sort       aggregate.SortSpec
	page       int
	pageSize   int
}

type numberBounds struct{ min, max *float64 }

type dateBounds struct{ from, to string }

// parseRecordQuery turns query parameters into filters, a sort and a page.
// Filters on the same field combine into one range.
func parseRecordQuery(values url.Values) (recordQuery, error) {
	q := recordQuery{page: 1, pageSize: aggregate.DefaultPageSize}

	if s := values.Get("q"); s != "" {
		q.predicates = append(q.predicates, aggregate.Search(s))
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	numbers := make(map[string]*numberBounds)
	dates := make(map[string]*dateBounds)
	var numberOrder, dateOrder []string

	for _, key := range keys {
		v := values.Get(key)
		switch {
		case strings.HasPrefix(key, filterEq):
			q.predicates = append(q.predicates, aggregate.Equals(strings.TrimPrefix(key, filterEq), v))

		case strings.HasPrefix(key, filterMin), strings.HasPrefix(key, filterMax):
			isMin := strings.HasPrefix(key, filterMin)
			field := strings.TrimPrefix(strings.TrimPrefix(key, filterMin), filterMax)
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return q, fmt.Errorf("%s must be a number", key)
			}
			b, ok := numbers[field]
			if !ok {
				b = &numberBounds{}
				numbers[field] = b
				numberOrder = append(numberOrder, field)
			}
			if isMin {
				b.min = &n
			} else {
				b.max = &n
			}

		case strings.HasPrefix(key, filterFrom), strings.HasPrefix(key, filterTo):
			isFrom := strings.HasPrefix(key, filterFrom)
			field := strings.TrimPrefix(strings.TrimPrefix(key, filterFrom), filterTo)
			if verr := validation.ValidateISODate(key, v); verr != nil {
				return q, fmt.Errorf("%s %s", verr.Field, verr.Message)
			}
			b, ok := dates[field]
			if !ok {
				b = &dateBounds{}
				dates[field] = b
				dateOrder = append(dateOrder, field)
			}
			if isFrom {
				b.from = v
			} else {
				b.to = v
			}
		}
	}

	for _, field := range numberOrder {
		b := numbers[field]
		q.predicates = append(q.predicates, aggregate.NumberRange(field, b.min, b.max))
	}
	for _, field := range dateOrder {
		b := dates[field]
		q.predicates = append(q.predicates, aggregate.DateWindow(field, b.from, b.to))
	}

	q.sort.Field = values.Get("sort")
	switch order := values.Get("order"); order {
	case "", "asc":
	case "desc":
		q.sort.Desc = true
	default:
		return q, fmt.Errorf("order must be asc or desc")
	}
	if s := values.Get("numeric"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, fmt.Errorf("numeric must be a boolean")
		}
		q.sort.Numeric = b
	}

	if s := values.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, fmt.Errorf("page must be a positive integer")
		}
		q.page = n
	}
	if s := values.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxPageSize {
			return q, fmt.Errorf("page_size must be between 1 and %d", MaxPageSize)
		}
		q.pageSize = n
	}

	return q, nil
}

// ListRecords handles GET /api/v1/datasets/{id}/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ds := MustDatasetFromContext(r.Context())

	q, err := parseRecordQuery(r.URL.Query())
	if err != nil {
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.ListRecords(r.Context(), ds.ID)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	matched := aggregate.FilterRecords(records, q.predicates...)
	sorted := aggregate.SortRecords(matched, q.sort)
	page := aggregate.Paginate(sorted, q.page, q.pageSize)

	writeJSON(w, http.StatusOK, types.RecordsResponse{
		Records:    page.Items,
		Matched:    page.TotalItems,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}
