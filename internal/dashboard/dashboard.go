// Package dashboard computes the read views of a dataset (summary, groups
// and timeline grid) from stored records and its schema, caching the
// record-derived views until the dataset is refreshed.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/cache"
	"github.com/hyperengineering/opsboard/internal/calendar"
	"github.com/hyperengineering/opsboard/internal/record"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/types"
)

// ErrUnknownGroup is returned when a schema has no grouping of that name.
var ErrUnknownGroup = errors.New("unknown group")

// ErrTooManyWeeks is returned when a timeline window exceeds MaxTimelineWeeks.
var ErrTooManyWeeks = errors.New("timeline window too wide")

const (
	// DefaultTimelineWeeks is the window shown for a timeline with no events.
	DefaultTimelineWeeks = 12

	// MaxTimelineWeeks caps the columns of one grid.
	MaxTimelineWeeks = 260
)

// Store is the subset of store.Store the views read from.
type Store interface {
	ListDatasets(ctx context.Context) ([]types.Dataset, error)
	ListRecords(ctx context.Context, datasetID string) ([]record.Record, error)
	GetTimeline(ctx context.Context, datasetID string) ([]calendar.Task, []calendar.Event, error)
}

// Service serves dataset views.
type Service struct {
	store     Store
	summaries *cache.Cache[types.SummaryResponse]
	groups    *cache.Cache[types.GroupsResponse]
	now       func() time.Time

	// mu orders Invalidate against cache writes; gens counts invalidations
	// per dataset so a view computed from pre-write records is never stored.
	mu   sync.Mutex
	gens map[string]uint64
}

// New creates a Service. A non-positive ttl disables caching; obs may be nil.
func New(store Store, ttl time.Duration, obs cache.Observer) *Service {
	return &Service{
		store:     store,
		summaries: cache.New[types.SummaryResponse](ttl, obs),
		groups:    cache.New[types.GroupsResponse](ttl, obs),
		now:       func() time.Time { return time.Now().UTC() },
		gens:      make(map[string]uint64),
	}
}

// Invalidate drops every cached view of a dataset. Views whose computation
// started before the call are not cached when they finish.
func (s *Service) Invalidate(datasetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[datasetID]++
	prefix := cache.DatasetPrefix(datasetID)
	s.summaries.Invalidate(prefix)
	s.groups.Invalidate(prefix)
}

func (s *Service) generation(datasetID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[datasetID]
}

// storeIfCurrent runs set only when datasetID has not been invalidated
// since gen was read.
func (s *Service) storeIfCurrent(datasetID string, gen uint64, set func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[datasetID] == gen {
		set()
	}
}

// Summary returns the dataset's completion summary, from cache when fresh.
func (s *Service) Summary(ctx context.Context, ds *types.Dataset) (types.SummaryResponse, error) {
	key := cache.SummaryKey(ds.ID)
	if v, ok := s.summaries.Get(key); ok {
		return v, nil
	}
	gen := s.generation(ds.ID)
	resp, err := s.computeSummary(ctx, ds)
	if err != nil {
		return types.SummaryResponse{}, err
	}
	s.storeIfCurrent(ds.ID, gen, func() { s.summaries.Set(key, resp) })
	return resp, nil
}

func (s *Service) computeSummary(ctx context.Context, ds *types.Dataset) (types.SummaryResponse, error) {
	sch, fields, err := resolve(ds)
	if err != nil {
		return types.SummaryResponse{}, err
	}
	records, err := s.store.ListRecords(ctx, ds.ID)
	if err != nil {
		return types.SummaryResponse{}, err
	}
	return BuildSummary(ds, sch, fields, records, s.now()), nil
}

// BuildSummary assembles a summary from already loaded records.
func BuildSummary(ds *types.Dataset, sch schema.Schema, fields []aggregate.NamedField, records []record.Record, now time.Time) types.SummaryResponse {
	resp := types.SummaryResponse{
		DatasetID:   ds.ID,
		Kind:        ds.Kind,
		RecordCount: len(records),
		Summary:     aggregate.Summarize(records, fields),
		Tasks:       aggregate.RankTasksByCompletion(records, fields),
		ComputedAt:  now,
	}
	if f := sch.TotalsField(); f != "" {
		t := aggregate.ComputeTotals(records, f)
		resp.Totals = &t
	}
	return resp
}

// Groups buckets the dataset's records by the named grouping. With alpha
// set, groups are ordered by label instead of numeric-then-encounter order.
func (s *Service) Groups(ctx context.Context, ds *types.Dataset, by string, alpha bool) (types.GroupsResponse, error) {
	key := cache.GroupKey(ds.ID, by)
	if alpha {
		key += "|alpha"
	}
	if v, ok := s.groups.Get(key); ok {
		return v, nil
	}
	gen := s.generation(ds.ID)

	sch, fields, err := resolve(ds)
	if err != nil {
		return types.GroupsResponse{}, err
	}
	keyFn, ok := sch.GroupKey(by)
	if !ok {
		return types.GroupsResponse{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownGroup, by, strings.Join(sch.GroupNames(), ", "))
	}
	records, err := s.store.ListRecords(ctx, ds.ID)
	if err != nil {
		return types.GroupsResponse{}, err
	}

	resp := BuildGroups(ds.ID, by, sch, fields, records, keyFn, alpha, s.now())
	s.storeIfCurrent(ds.ID, gen, func() { s.groups.Set(key, resp) })
	return resp, nil
}

// BuildGroups assembles a grouping from already loaded records.
func BuildGroups(datasetID, by string, sch schema.Schema, fields []aggregate.NamedField, records []record.Record, keyFn aggregate.KeyFunc, alpha bool, now time.Time) types.GroupsResponse {
	groups := aggregate.GroupBy(records, keyFn)
	if alpha {
		groups = aggregate.SortGroupsByLabel(groups)
	}

	totalsField := sch.TotalsField()
	resp := types.GroupsResponse{
		DatasetID:  datasetID,
		By:         by,
		Groups:     make([]types.GroupEntry, 0, len(groups)),
		ComputedAt: now,
	}
	for i, gs := range aggregate.SummarizeGroups(groups, fields) {
		entry := types.GroupEntry{
			Label:   gs.Key.Label,
			Numeric: gs.Key.Numeric,
			Count:   gs.Count,
			Summary: gs.Summary,
		}
		if totalsField != "" {
			t := aggregate.ComputeTotals(groups[i].Records, totalsField)
			entry.Totals = &t
		}
		resp.Groups = append(resp.Groups, entry)
	}
	return resp
}

// TimelineOptions selects the week columns and rendering of a timeline.
// Weeks wins over From/To. A zero Now means the current time.
type TimelineOptions struct {
	Weeks []string
	From  string
	To    string
	Now   time.Time
	Span  calendar.SpanPolicy
}

// Timeline lays the dataset's stored tasks and events out as a grid.
func (s *Service) Timeline(ctx context.Context, ds *types.Dataset, opts TimelineOptions) (types.TimelineResponse, error) {
	tasks, events, err := s.store.GetTimeline(ctx, ds.ID)
	if err != nil {
		return types.TimelineResponse{}, err
	}

	now := opts.Now
	if now.IsZero() {
		now = s.now()
	}
	policy := opts.Span
	if policy == "" {
		policy = calendar.DefaultSpanPolicy
	}

	weeks := opts.Weeks
	if len(weeks) == 0 {
		if weeks, err = TimelineWeeks(events, opts.From, opts.To, now); err != nil {
			return types.TimelineResponse{}, err
		}
	}
	if len(weeks) > MaxTimelineWeeks {
		return types.TimelineResponse{}, fmt.Errorf("%w: %d weeks, max %d", ErrTooManyWeeks, len(weeks), MaxTimelineWeeks)
	}

	return types.TimelineResponse{
		DatasetID:  ds.ID,
		Span:       policy,
		Grid:       calendar.BuildGrid(tasks, events, weeks, now, policy),
		Categories: calendar.GroupTasksByCategory(tasks),
	}, nil
}

// TimelineWeeks picks week columns. Explicit from/to bounds win; a missing
// bound is taken from the earliest start or latest end of events. With
// neither, the window starts at now and runs DefaultTimelineWeeks weeks.
// A window derived from events is clamped to MaxTimelineWeeks; explicit
// bounds wider than that return ErrTooManyWeeks.
func TimelineWeeks(events []calendar.Event, from, to string, now time.Time) ([]string, error) {
	start, hasStart := calendar.ParseDate(from, time.UTC)
	end, hasEnd := calendar.ParseDate(to, time.UTC)

	if !hasStart || !hasEnd {
		var first, last time.Time
		for _, e := range events {
			if t, ok := calendar.ParseDate(e.StartDate, time.UTC); ok && (first.IsZero() || t.Before(first)) {
				first = t
			}
			if t, ok := calendar.ParseDate(e.EndDate, time.UTC); ok && t.After(last) {
				last = t
			}
		}
		if !hasStart {
			start = first
			if start.IsZero() {
				start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			}
		}
		if !hasEnd {
			end = last
			if end.Before(start) {
				end = calendar.StartOfWeek(start).AddDate(0, 0, 7*DefaultTimelineWeeks-1)
			}
		}
	}

	span := 7 * (MaxTimelineWeeks - 1)
	if limit := calendar.StartOfWeek(start).AddDate(0, 0, span+6); end.After(limit) {
		switch {
		case hasStart && hasEnd:
			return nil, fmt.Errorf("%w: %s to %s, max %d weeks", ErrTooManyWeeks, from, to, MaxTimelineWeeks)
		case hasEnd:
			start = calendar.StartOfWeek(end).AddDate(0, 0, -span)
		default:
			end = limit
		}
	}
	return calendar.WeekStarts(start, end), nil
}

// Refresh recomputes and caches the summary of one dataset.
func (s *Service) Refresh(ctx context.Context, ds *types.Dataset) error {
	s.Invalidate(ds.ID)
	gen := s.generation(ds.ID)
	resp, err := s.computeSummary(ctx, ds)
	if err != nil {
		return err
	}
	s.storeIfCurrent(ds.ID, gen, func() { s.summaries.Set(cache.SummaryKey(ds.ID), resp) })
	return nil
}

// RefreshAll recomputes every dataset's summary. It keeps going past
// per-dataset failures and returns the number refreshed with the joined
// errors.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	datasets, err := s.store.ListDatasets(ctx)
	if err != nil {
		return 0, fmt.Errorf("list datasets: %w", err)
	}
	s.summaries.Purge()
	s.groups.Purge()

	var errs []error
	n := 0
	for i := range datasets {
		if ctx.Err() != nil {
			return n, ctx.Err()
		}
		if err := s.Refresh(ctx, &datasets[i]); err != nil {
			errs = append(errs, fmt.Errorf("refresh %s: %w", datasets[i].ID, err))
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

func resolve(ds *types.Dataset) (schema.Schema, []aggregate.NamedField, error) {
	sch, err := schema.Lookup(ds.Kind)
	if err != nil {
		return nil, nil, err
	}
	fields, err := schema.Resolve(ds.Kind, ds.Fields)
	if err != nil {
		return nil, nil, err
	}
	return sch, fields, nil
}
