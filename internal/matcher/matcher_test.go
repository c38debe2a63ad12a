package matcher

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fgo_bot/internal/model"
)

// fakeCatalog serves canned candidates per (name, region).
type fakeCatalog struct {
	mu      sync.Mutex
	results map[string][]model.Servant
	calls   []string
}

func (f *fakeCatalog) Search(_ context.Context, name string, region model.Region) []model.Servant {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s/%s", region, name))
	f.mu.Unlock()
	return f.results[fmt.Sprintf("%s/%s", region, name)]
}

func TestMatchClassification(t *testing.T) {
	tests := []struct {
		name    string
		results map[string][]model.Servant
		want    model.MatchResult
	}{
		{
			name:    "no match in either region",
			results: map[string][]model.Servant{},
			want:    model.MatchResult{Name: "nobody", Relationship: model.RelNone},
		},
		{
			name: "na only",
			results: map[string][]model.Servant{
				"NA/nobody": {{ID: 1, Name: "Nobody", CollectionNo: 10}},
			},
			want: model.MatchResult{
				Name:         "nobody",
				NA:           &model.Servant{ID: 1, Name: "Nobody", CollectionNo: 10},
				Relationship: model.RelNAOnly,
			},
		},
		{
			name: "jp only",
			results: map[string][]model.Servant{
				"JP/nobody": {{ID: 2, Name: "Nobody", CollectionNo: 300}},
			},
			want: model.MatchResult{
				Name:         "nobody",
				JP:           &model.Servant{ID: 2, Name: "Nobody", CollectionNo: 300},
				Relationship: model.RelJPOnly,
			},
		},
		{
			name: "both regions, same collection number",
			results: map[string][]model.Servant{
				"NA/nobody": {{ID: 1, Name: "Nobody", CollectionNo: 10}},
				"JP/nobody": {{ID: 9, Name: "Nobody", CollectionNo: 10}},
			},
			want: model.MatchResult{
				Name:         "nobody",
				NA:           &model.Servant{ID: 1, Name: "Nobody", CollectionNo: 10},
				JP:           &model.Servant{ID: 9, Name: "Nobody", CollectionNo: 10},
				Relationship: model.RelBothSame,
			},
		},
		{
			name: "both regions, different collection numbers",
			results: map[string][]model.Servant{
				"NA/nobody": {{ID: 1, Name: "Nobody", CollectionNo: 10}},
				"JP/nobody": {{ID: 9, Name: "Nobody", CollectionNo: 11}},
			},
			want: model.MatchResult{
				Name:         "nobody",
				NA:           &model.Servant{ID: 1, Name: "Nobody", CollectionNo: 10},
				JP:           &model.Servant{ID: 9, Name: "Nobody", CollectionNo: 11},
				Relationship: model.RelBothDifferent,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(&fakeCatalog{results: tt.results})
			got := m.Match(context.Background(), "nobody")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchTakesFirstCandidate(t *testing.T) {
	m := New(&fakeCatalog{results: map[string][]model.Servant{
		"NA/saber": {
			{ID: 1, Name: "Best Match", CollectionNo: 2},
			{ID: 2, Name: "Second Match", CollectionNo: 3},
		},
	}})

	got := m.Match(context.Background(), "saber")
	if got.NA == nil || got.NA.Name != "Best Match" {
		t.Errorf("Match() representative = %+v, want first candidate", got.NA)
	}
}

func TestMatchIsIdempotent(t *testing.T) {
	m := New(&fakeCatalog{results: map[string][]model.Servant{
		"NA/saber": {{ID: 1, Name: "Saber", CollectionNo: 2}},
		"JP/saber": {{ID: 5, Name: "Saber", CollectionNo: 2}},
	}})

	first := m.Match(context.Background(), "saber")
	second := m.Match(context.Background(), "saber")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Match() differs (-first +second):\n%s", diff)
	}
}

func TestMatchQueriesBothRegions(t *testing.T) {
	fake := &fakeCatalog{results: map[string][]model.Servant{}}
	m := New(fake)

	m.Match(context.Background(), "saber")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	seen := map[string]bool{}
	for _, c := range fake.calls {
		seen[c] = true
	}
	if !seen["NA/saber"] || !seen["JP/saber"] {
		t.Errorf("expected one search per region, got calls %v", fake.calls)
	}
}

func TestConcurrentMatchesDoNotInterfere(t *testing.T) {
	fake := &fakeCatalog{results: map[string][]model.Servant{
		"NA/saber":  {{ID: 1, Name: "Saber", CollectionNo: 2}},
		"JP/saber":  {{ID: 5, Name: "Saber", CollectionNo: 2}},
		"NA/archer": {{ID: 7, Name: "Archer", CollectionNo: 900}},
	}}
	m := New(fake)

	var wg sync.WaitGroup
	var saber, archer model.MatchResult
	wg.Add(2)
	go func() {
		defer wg.Done()
		saber = m.Match(context.Background(), "saber")
	}()
	go func() {
		defer wg.Done()
		archer = m.Match(context.Background(), "archer")
	}()
	wg.Wait()

	if saber.Relationship != model.RelBothSame || saber.NA.Name != "Saber" {
		t.Errorf("saber result contaminated: %+v", saber)
	}
	if archer.Relationship != model.RelNAOnly || archer.NA.Name != "Archer" {
		t.Errorf("archer result contaminated: %+v", archer)
	}
}
