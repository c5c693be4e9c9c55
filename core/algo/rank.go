package algo

import (
	"math"
	"sort"

	"github.com/periscan/periscan/schema"
)

// RankPeaks sorts peaks by power in descending order and returns the top
// 'limit' entries. NaN powers sort last so that skipped trial fits never
// outrank real peaks. A limit of zero or less keeps every peak.
func RankPeaks(peaks []schema.Peak, limit int) []schema.Peak {
	sort.SliceStable(peaks, func(i, j int) bool {
		pi, pj := peaks[i].Power, peaks[j].Power
		if math.IsNaN(pi) {
			return false
		}
		if math.IsNaN(pj) {
			return true
		}
		return pi > pj
	})
	if limit > 0 && len(peaks) > limit {
		return peaks[:limit]
	}
	return peaks
}
