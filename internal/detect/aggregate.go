package detect

import (
	"strings"

	"plastictrack/internal/category"
)

// Aggregate tallies one request's raw detections into per-category
// increments. Detections with a blank label are skipped individually instead
// of failing the batch; empty input yields an empty map.
func Aggregate(detections []Detection) map[string]int {
	counts := make(map[string]int)
	for _, d := range detections {
		if strings.TrimSpace(d.Label) == "" {
			continue
		}
		counts[category.Map(d.Label)]++
	}
	return counts
}
