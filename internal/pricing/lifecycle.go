package pricing

import (
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
)

// Phase is a sale occasion's temporal state relative to a clock reading.
// It is always derived, never stored.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PhaseAt derives a campaign's phase at the given instant.
func PhaseAt(sale *model.SaleOccasion, now time.Time) Phase {
	if now.Before(sale.StartAt) {
		return PhaseNotStarted
	}
	if now.After(sale.EndAt) {
		return PhaseEnded
	}
	return PhaseActive
}

// ValidateWindow rejects windows where the end does not come strictly after
// the start.
func ValidateWindow(startAt, endAt time.Time) error {
	if !endAt.After(startAt) {
		return model.Validationf(model.ErrCodeInvalidDateRange,
			"Sale end time must be after the start time")
	}
	return nil
}

// ValidateEntries checks a request's product entries: quantities must be
// non-negative, percents within [0, 100], and a product id must not repeat
// within the same campaign.
func ValidateEntries(entries []model.SaleEntry) error {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		if e.SaleQuantity < 0 {
			return model.Validationf(model.ErrCodeInvalidQuantity,
				"Sale quantity cannot be negative")
		}
		if e.SalePercent < 0 || e.SalePercent > 100 {
			return model.Validationf(model.ErrCodeInvalidPercent,
				"Sale percent must be between 0 and 100")
		}
		if _, dup := seen[e.ProductID]; dup {
			return model.Validationf(model.ErrCodeDuplicateProduct,
				"Product %s appears more than once in the sale", e.ProductID)
		}
		seen[e.ProductID] = struct{}{}
	}
	return nil
}

// CheckUpdatable gates an update against the campaign's phase: an ended
// campaign is immutable, and a running campaign's start time is locked.
func CheckUpdatable(sale *model.SaleOccasion, newStartAt *time.Time, now time.Time) error {
	switch PhaseAt(sale, now) {
	case PhaseEnded:
		return model.ErrSaleEnded
	case PhaseActive:
		if newStartAt != nil && !newStartAt.Equal(sale.StartAt) {
			return model.ErrSaleStartLocked
		}
	}
	return nil
}

// CheckDeletable allows deletion only before the campaign starts. The looser
// historical behaviour of also permitting deletes mid-campaign was dropped.
func CheckDeletable(sale *model.SaleOccasion, now time.Time) error {
	if PhaseAt(sale, now) != PhaseNotStarted {
		return model.ErrSaleDeleteLocked
	}
	return nil
}

// WindowsOverlap reports whether two inclusive time windows intersect.
func WindowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
