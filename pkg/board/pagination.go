package board

import (
	"sort"

	"threadb/pkg/models"
)

// Paginate sorts threads by last activity (most recent first; equal
// timestamps order by ascending id so pages are deterministic) and returns
// the requested page. The requested page is clamped into [1, totalPages];
// an empty collection yields an empty page with totalPages 0 and
// currentPage as requested through the low clamp.
func Paginate(threads []models.Thread, requestedPage, pageSize int) (page []models.Thread, currentPage, totalPages int) {
	sorted := make([]models.Thread, len(threads))
	copy(sorted, threads)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LastUpdated != sorted[j].LastUpdated {
			return sorted[i].LastUpdated > sorted[j].LastUpdated
		}
		return sorted[i].ID < sorted[j].ID
	})

	totalPages = (len(sorted) + pageSize - 1) / pageSize

	currentPage = requestedPage
	if currentPage < 1 {
		currentPage = 1
	} else if currentPage > totalPages && totalPages > 0 {
		currentPage = totalPages
	}

	start := (currentPage - 1) * pageSize
	if start >= len(sorted) {
		return []models.Thread{}, currentPage, totalPages
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], currentPage, totalPages
}
