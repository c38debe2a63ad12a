// Package banners resolves a servant's upcoming availability windows and
// estimates when JP banners reach NA.
package banners

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fgo_bot/internal/catalog"
	"fgo_bot/internal/model"
	"fgo_bot/internal/timeutil"
)

// detailFanOut bounds the concurrent schedule-detail fetches of the
// list-then-detail strategy.
const detailFanOut = 4

// Resolver returns the servant's availability windows that have not yet
// ended, in the schedule source's original order. Resolution failures are
// logged and yield an empty slice, never an error.
type Resolver interface {
	Upcoming(ctx context.Context, servantID int64, region model.Region) []model.Banner
}

// listSource is the catalog capability of the list-then-detail strategy.
type listSource interface {
	Schedules(ctx context.Context, region model.Region) []catalog.Schedule
	ScheduleDetail(ctx context.Context, id int64, region model.Region) (*catalog.Schedule, error)
}

// directSource is the catalog capability of the direct-by-entity strategy.
type directSource interface {
	SchedulesFor(ctx context.Context, entityID int64, region model.Region) []catalog.Schedule
}

// ListDetailResolver fetches the whole schedule list, keeps records that
// have not ended, then fetches each survivor's detail to test whether the
// servant is on its rate-up list. One catalog request per surviving
// record; individual detail failures skip that record only.
type ListDetailResolver struct {
	source listSource
	log    *slog.Logger
	now    func() time.Time
}

// NewListDetail creates the list-then-detail resolver.
func NewListDetail(source listSource, log *slog.Logger) *ListDetailResolver {
	return &ListDetailResolver{source: source, log: log, now: time.Now}
}

// Upcoming implements Resolver.
func (r *ListDetailResolver) Upcoming(ctx context.Context, servantID int64, region model.Region) []model.Banner {
	now := r.now()
	var future []catalog.Schedule
	for _, s := range r.source.Schedules(ctx, region) {
		if timeutil.FromEpoch(s.End).After(now) {
			future = append(future, s)
		}
	}
	if len(future) == 0 {
		return nil
	}

	// Indexed results keep the source order despite concurrent fetches.
	results := make([]*model.Banner, len(future))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFanOut)
	for i, s := range future {
		g.Go(func() error {
			detail, err := r.source.ScheduleDetail(gctx, s.ID, region)
			if err != nil {
				r.log.Error("schedule detail", "region", region, "schedule_id", s.ID, "error", err)
				return nil
			}
			if !featuresServant(detail, servantID) {
				return nil
			}
			b := toBanner(*detail)
			results[i] = &b
			return nil
		})
	}
	_ = g.Wait()

	var banners []model.Banner
	for _, b := range results {
		if b != nil {
			banners = append(banners, *b)
		}
	}
	return banners
}

// DirectResolver asks the catalog for the servant's own schedule list and
// filters it locally. One catalog request per resolution.
type DirectResolver struct {
	source directSource
	now    func() time.Time
}

// NewDirect creates the direct-by-entity resolver.
func NewDirect(source directSource) *DirectResolver {
	return &DirectResolver{source: source, now: time.Now}
}

// Upcoming implements Resolver.
func (r *DirectResolver) Upcoming(ctx context.Context, servantID int64, region model.Region) []model.Banner {
	now := r.now()
	var banners []model.Banner
	for _, s := range r.source.SchedulesFor(ctx, servantID, region) {
		if timeutil.FromEpoch(s.End).After(now) {
			banners = append(banners, toBanner(s))
		}
	}
	return banners
}

func featuresServant(s *catalog.Schedule, servantID int64) bool {
	for _, r := range s.RateUp {
		if r.Type == catalog.RateUpTypeEntity && r.ID == servantID {
			return true
		}
	}
	return false
}

func toBanner(s catalog.Schedule) model.Banner {
	return model.Banner{
		ID:    s.ID,
		Title: s.Title,
		Start: timeutil.FromEpoch(s.Start),
		End:   timeutil.FromEpoch(s.End),
	}
}
