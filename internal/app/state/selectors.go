// internal/app/state/selectors.go
package state

import (
	"strings"

	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// WeeksPerMonth is the billing period a booking is priced for.
const WeeksPerMonth = 4

// TotalCost prices a booking form for a tutor's hourly rate.
func TotalCost(b BookingData, hourlyRate float64) float64 {
	return float64(b.DaysPerWeek*b.HoursPerDay*WeeksPerMonth) * hourlyRate
}

// FindTutor looks up a listed tutor by id.
func FindTutor(s State, id models.ID) (models.Tutor, bool) {
	for _, t := range s.Tutors {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tutor{}, false
}

// UnreadCount is the number of notifications not yet marked read.
func UnreadCount(s State) int {
	n := 0
	for _, x := range s.Notifications {
		if !x.Read {
			n++
		}
	}
	return n
}

// VisibleTutors returns the listed tutors that pass the search filters.
// Text matching ignores case and diacritics.
func VisibleTutors(s State) []models.Tutor {
	f := s.SearchFilters
	q := text.Fold(strings.TrimSpace(f.Query))
	subject := text.Fold(strings.TrimSpace(f.Subject))
	loc := text.Fold(strings.TrimSpace(f.Location))

	out := make([]models.Tutor, 0, len(s.Tutors))
	for _, t := range s.Tutors {
		if f.VerifiedOnly && !t.Verified {
			continue
		}
		if f.MinRating > 0 && t.Rating < f.MinRating {
			continue
		}
		if f.MaxRate > 0 && t.HourlyRate > f.MaxRate {
			continue
		}
		if loc != "" && !strings.Contains(text.Fold(t.Location), loc) {
			continue
		}
		if subject != "" && !anyContains(t.Specialties, subject) {
			continue
		}
		if q != "" && !strings.Contains(text.Fold(t.Name), q) &&
			!strings.Contains(text.Fold(t.Bio), q) && !anyContains(t.Specialties, q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func anyContains(values []string, folded string) bool {
	for _, v := range values {
		if strings.Contains(text.Fold(v), folded) {
			return true
		}
	}
	return false
}
