package allocation

import (
	"math"

	"ArticleAllocator/internal/domain"
)

// TotalAllocated sums the requested counts across all priority fields.
func TotalAllocated(fields []domain.PriorityField) int {
	total := 0
	for _, field := range fields {
		total += field.Value
	}
	return total
}

// Remaining reports how many articles are still unclaimed; it goes negative
// when the fields request more than the pool holds.
func Remaining(total, allocated int) int {
	return total - allocated
}

// IsOverAllocated reports whether the requested total exceeds the available
// pool. A zero pool means the pool size is not yet known and never trips the
// check.
func IsOverAllocated(total, allocated int) bool {
	return allocated > total && total > 0
}

// RecalculateTotal returns the total as if the field with changedID held
// newValue, without mutating the input. Used for live validation while a
// field is being edited.
func RecalculateTotal(fields []domain.PriorityField, changedID string, newValue int) int {
	total := 0
	for _, field := range fields {
		if field.ID == changedID {
			total += newValue
			continue
		}
		total += field.Value
	}
	return total
}

// ProportionalDistribution splits totalArticles across the fields and
// returns a copy with the new values. When nothing has been requested yet
// the split is as even as possible, with the remainder going to the first
// fields in order. Otherwise each field keeps its current ratio, rounded,
// and the last field absorbs the rounding remainder so the distributed sum
// always equals totalArticles exactly.
func ProportionalDistribution(totalArticles int, fields []domain.PriorityField) []domain.PriorityField {
	out := make([]domain.PriorityField, len(fields))
	copy(out, fields)
	if len(out) == 0 {
		return out
	}

	current := TotalAllocated(fields)
	if current == 0 {
		per := totalArticles / len(out)
		remainder := totalArticles % len(out)
		for i := range out {
			out[i].Value = per
			if i < remainder {
				out[i].Value++
			}
		}
		return out
	}

	assigned := 0
	for i := 0; i < len(out)-1; i++ {
		share := int(math.Round(float64(totalArticles) * float64(fields[i].Value) / float64(current)))
		out[i].Value = share
		assigned += share
	}
	out[len(out)-1].Value = totalArticles - assigned

	return out
}
