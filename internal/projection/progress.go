// Package projection derives digital-book progress metrics from a Book
// value. Every consumer (hub badge, audit panel, overview) recomputes
// from the authoritative Book snapshot it was given; no screen keeps its
// own copy of completion state.
package projection

import (
	"math"

	"building-book-be/internal/catalog"
	"building-book-be/internal/entity"
)

type ProgressMetrics struct {
	CompletedCount int `json:"completed_count"`
	Percentage     int `json:"percentage"`
}

// Progress counts the book's complete sections that map back to a catalog
// entry. A nil book or one with no sections yields zero; a section type
// absent from the book counts as not complete, never as an error.
func Progress(book *entity.Book, resolver *catalog.Resolver) ProgressMetrics {
	if book == nil {
		return ProgressMetrics{}
	}

	seen := make(map[string]bool)
	for _, section := range book.Sections {
		if !section.Complete {
			continue
		}
		uiId, ok := resolver.ToUiId(section.Type)
		if !ok {
			// Backend-added type unknown to this catalog version
			continue
		}
		seen[uiId] = true
	}

	count := len(seen)
	percentage := int(math.Round(float64(count) / float64(catalog.StepCount()) * 100))
	return ProgressMetrics{
		CompletedCount: count,
		Percentage:     percentage,
	}
}
