package banners

import (
	"time"

	"fgo_bot/internal/timeutil"
)

// naLagYears is the historical JP → NA content lag. It has held since the
// NA launch but is not checked against reality, so every projection built
// on it must be labelled as an estimate.
const naLagYears = 2

// EstimateNARelease projects a JP banner start onto the NA timeline at
// month granularity. Pure function of the start instant.
func EstimateNARelease(jpStart time.Time) string {
	return timeutil.YearMonth(jpStart.AddDate(naLagYears, 0, 0))
}
