package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"fgo_bot/internal/model"
)

func TestFormatMatchReport(t *testing.T) {
	na := &model.Servant{ID: 1, Name: "Artoria Pendragon", CollectionNo: 2}
	jp := &model.Servant{ID: 9, Name: "Artoria Pendragon", CollectionNo: 2}
	jpOther := &model.Servant{ID: 9, Name: "Artoria Pendragon", CollectionNo: 5}

	tests := []struct {
		name string
		res  model.MatchResult
		want string
	}{
		{
			name: "none",
			res:  model.MatchResult{Name: "nobody", Relationship: model.RelNone},
			want: `No servant named "nobody" was found in either region.`,
		},
		{
			name: "both same shows one collection number",
			res:  model.MatchResult{Name: "artoria", NA: na, JP: jp, Relationship: model.RelBothSame},
			want: "Artoria Pendragon exists in both NA and JP.\nCollection No. 2",
		},
		{
			name: "both different shows both numbers labelled",
			res:  model.MatchResult{Name: "artoria", NA: na, JP: jpOther, Relationship: model.RelBothDifferent},
			want: "Artoria Pendragon exists in both regions, but as different servants.\nNA: Collection No. 2\nJP: Collection No. 5",
		},
		{
			name: "na only",
			res:  model.MatchResult{Name: "artoria", NA: na, Relationship: model.RelNAOnly},
			want: "Artoria Pendragon is only available in NA.\nNA: Collection No. 2",
		},
		{
			name: "jp only",
			res:  model.MatchResult{Name: "artoria", JP: jpOther, Relationship: model.RelJPOnly},
			want: "Artoria Pendragon is only available in JP.\nJP: Collection No. 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatMatchReport(tt.res)); diff != "" {
				t.Errorf("FormatMatchReport() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatMatchReportSingleNumberLine(t *testing.T) {
	res := model.MatchResult{
		Name:         "artoria",
		NA:           &model.Servant{Name: "Artoria Pendragon", CollectionNo: 2},
		JP:           &model.Servant{Name: "Artoria Pendragon", CollectionNo: 2},
		Relationship: model.RelBothSame,
	}

	got := FormatMatchReport(res)
	if n := strings.Count(got, "Collection No."); n != 1 {
		t.Errorf("BOTH_SAME report has %d collection-number lines, want exactly 1:\n%s", n, got)
	}
}

func TestFormatBannerReport(t *testing.T) {
	res := model.MatchResult{
		Name:         "artoria",
		NA:           &model.Servant{ID: 1, Name: "Artoria Pendragon", CollectionNo: 2},
		JP:           &model.Servant{ID: 9, Name: "Artoria Pendragon", CollectionNo: 2},
		Relationship: model.RelBothSame,
	}

	naBanners := []model.Banner{
		{ID: 1, Title: "Anniversary Pickup", Start: date(2026, 1, 10), End: date(2026, 1, 24)},
	}
	jpBanners := []model.Banner{
		{ID: 2, Title: "New Year Pickup", Start: date(2024, 3, 1), End: date(2024, 3, 15)},
		{ID: 3, Start: date(2024, 6, 1), End: date(2024, 6, 10)},
	}

	got := FormatBannerReport(res, naBanners, jpBanners)

	wantFragments := []string{
		"NA:\n1. Anniversary Pickup — 2026-01-10 to 2026-01-24",
		"JP:\n1. New Year Pickup — 2024-03-01 to 2024-03-15",
		"Estimated NA availability: 2026-03",
		"2. Unnamed Banner — 2024-06-01 to 2024-06-10",
		"Estimated NA availability: 2026-06",
	}
	for _, want := range wantFragments {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}

	// NA section must precede JP.
	if strings.Index(got, "NA:") > strings.Index(got, "JP:") {
		t.Errorf("NA section does not precede JP section:\n%s", got)
	}
}

func TestFormatBannerReportNoneFound(t *testing.T) {
	res := model.MatchResult{
		Name:         "artoria",
		NA:           &model.Servant{ID: 1, Name: "Artoria Pendragon", CollectionNo: 2},
		Relationship: model.RelNAOnly,
	}

	got := FormatBannerReport(res, nil, nil)
	want := `No upcoming banners found for "artoria".`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatBannerReport() mismatch (-want +got):\n%s", diff)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
