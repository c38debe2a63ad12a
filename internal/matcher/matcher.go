// Package matcher resolves a servant name against both regional catalogs
// and classifies how the two results relate.
package matcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fgo_bot/internal/model"
)

// Searcher is the catalog capability the matcher needs.
type Searcher interface {
	Search(ctx context.Context, name string, region model.Region) []model.Servant
}

// Matcher runs cross-region servant lookups.
type Matcher struct {
	catalog Searcher
}

// New creates a Matcher over the given catalog.
func New(catalog Searcher) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match searches both regions concurrently and classifies the result.
// The external source's relevance order is trusted: the first candidate of
// each region is taken as the representative, with no local re-ranking.
func (m *Matcher) Match(ctx context.Context, name string) model.MatchResult {
	var na, jp *model.Servant

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		na = first(m.catalog.Search(gctx, name, model.RegionNA))
		return nil
	})
	g.Go(func() error {
		jp = first(m.catalog.Search(gctx, name, model.RegionJP))
		return nil
	})
	_ = g.Wait()

	return model.MatchResult{
		Name:         name,
		NA:           na,
		JP:           jp,
		Relationship: classify(na, jp),
	}
}

func first(candidates []model.Servant) *model.Servant {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

func classify(na, jp *model.Servant) model.Relationship {
	switch {
	case na == nil && jp == nil:
		return model.RelNone
	case jp == nil:
		return model.RelNAOnly
	case na == nil:
		return model.RelJPOnly
	case na.CollectionNo == jp.CollectionNo:
		return model.RelBothSame
	default:
		return model.RelBothDifferent
	}
}
