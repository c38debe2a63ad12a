package bot

import (
	"fmt"
	"strings"

	"fgo_bot/internal/banners"
	"fgo_bot/internal/model"
	"fgo_bot/internal/timeutil"
)

// untitledBanner is the display fallback for windows without a title.
const untitledBanner = "Unnamed Banner"

// FormatMatchReport renders a cross-region lookup result. The wording per
// relationship is fixed; tests pin it.
func FormatMatchReport(res model.MatchResult) string {
	switch res.Relationship {
	case model.RelNone:
		return fmt.Sprintf("No servant named %q was found in either region.", res.Name)
	case model.RelNAOnly:
		return fmt.Sprintf("%s is only available in NA.\nNA: Collection No. %d", res.NA.Name, res.NA.CollectionNo)
	case model.RelJPOnly:
		return fmt.Sprintf("%s is only available in JP.\nJP: Collection No. %d", res.JP.Name, res.JP.CollectionNo)
	case model.RelBothSame:
		return fmt.Sprintf("%s exists in both NA and JP.\nCollection No. %d", res.NA.Name, res.NA.CollectionNo)
	case model.RelBothDifferent:
		return fmt.Sprintf("%s exists in both regions, but as different servants.\nNA: Collection No. %d\nJP: Collection No. %d",
			res.NA.Name, res.NA.CollectionNo, res.JP.CollectionNo)
	default:
		return fmt.Sprintf("No servant named %q was found in either region.", res.Name)
	}
}

// FormatBannerReport renders the upcoming banners of both regions. NA
// windows come first; every JP window gets an estimated NA line.
func FormatBannerReport(res model.MatchResult, naBanners, jpBanners []model.Banner) string {
	if len(naBanners) == 0 && len(jpBanners) == 0 {
		return fmt.Sprintf("No upcoming banners found for %q.", res.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Upcoming banners for %q:\n", res.Name)

	if len(naBanners) > 0 {
		b.WriteString("\nNA:\n")
		for i, banner := range naBanners {
			b.WriteString(bannerLine(i, banner))
		}
	}

	if len(jpBanners) > 0 {
		b.WriteString("\nJP:\n")
		for i, banner := range jpBanners {
			b.WriteString(bannerLine(i, banner))
			fmt.Fprintf(&b, "   Estimated NA availability: %s (estimate based on the usual 2-year gap)\n",
				banners.EstimateNARelease(banner.Start))
		}
	}

	return b.String()
}

func bannerLine(i int, banner model.Banner) string {
	title := banner.Title
	if title == "" {
		title = untitledBanner
	}
	return fmt.Sprintf("%d. %s — %s to %s\n", i+1, title, timeutil.DateOnly(banner.Start), timeutil.DateOnly(banner.End))
}
