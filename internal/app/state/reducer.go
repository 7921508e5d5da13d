// internal/app/state/reducer.go
package state

import (
	"slices"

	"github.com/dalemusser/tutorhub/internal/domain/models"
)

// Reduce computes the state that follows s once a is applied.
//
// s is never modified. The result shares every slice and pointer that the
// action did not touch, so callers can compare sub-trees by identity.
// Tags Reduce does not know leave s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {

	case SetUser:
		if a.User != nil {
			u := *a.User
			s.CurrentUser = &u
		} else {
			s.CurrentUser = nil
		}
		s.UserRole = a.Role

	case SetPage:
		s.CurrentPage = a.Page
		if a.SignupRole != nil {
			s.SignupRole = *a.SignupRole
		}

	case SetUIState:
		s.UI = a.Patch.apply(s.UI)
	case SetSearchFilters:
		s.SearchFilters = a.Patch.apply(s.SearchFilters)
	case UpdateContactForm:
		s.ContactForm = a.Patch.apply(s.ContactForm)
	case ResetContactForm:
		s.ContactForm = DefaultContactForm()
	case UpdateProfileModal:
		s.ProfileModal = a.Patch.apply(s.ProfileModal)
	case UpdateBookingData:
		s.BookingData = a.Patch.apply(s.BookingData)
	case ResetBookingData:
		s.BookingData = DefaultBookingData()
	case ToggleBookingDay:
		return toggleDay(s, a.Day)

	case SetProfileEditing:
		s.ProfileEditing = a.Editing
		if a.Draft != nil {
			d := *a.Draft
			d.Specialties = slices.Clone(d.Specialties)
			s.ProfileDraft = &d
		}

	/*── wholesale replace ──────────────────────────────────────────────*/

	case SetTutors:
		s.Tutors = a.Tutors
	case SetPendingTutors:
		s.PendingTutors = a.Tutors
	case SetStudents:
		s.Students = a.Students
	case SetBookings:
		s.Bookings = a.Bookings
	case SetFeedbacks:
		s.Feedbacks = a.Feedbacks
	case SetPaymentVerifications:
		s.PaymentVerifications = a.Verifications
	case SetNotifications:
		s.Notifications = a.Notifications

	/*── append ─────────────────────────────────────────────────────────*/

	case AddTutor:
		s.Tutors = appendOne(s.Tutors, a.Tutor)
	case AddPendingTutor:
		s.PendingTutors = appendOne(s.PendingTutors, a.Tutor)
	case AddStudent:
		s.Students = appendOne(s.Students, a.Student)
	case AddBooking:
		s.Bookings = appendOne(s.Bookings, a.Booking)
	case AddFeedback:
		s.Feedbacks = appendOne(s.Feedbacks, a.Feedback)
	case AddPaymentVerification:
		s.PaymentVerifications = appendOne(s.PaymentVerifications, a.Verification)
	case AddNotification:
		s.Notifications = appendOne(s.Notifications, a.Notification)

	/*── patch by id ────────────────────────────────────────────────────*/

	case UpdateTutor:
		s.Tutors = updateWhere(s.Tutors, tutorID(a.Tutor.ID), func(models.Tutor) models.Tutor {
			return a.Tutor
		})
	case UpdateStudent:
		s.Students = updateWhere(s.Students, func(x models.Student) bool { return x.ID == a.Student.ID },
			func(models.Student) models.Student { return a.Student })
	case UpdateBooking:
		s.Bookings = updateWhere(s.Bookings, func(b models.Booking) bool { return b.ID == a.ID },
			func(b models.Booking) models.Booking {
				merged, err := models.Merge(b, a.Patch)
				if err != nil {
					return b
				}
				return merged
			})
	case MarkNotificationRead:
		s.Notifications = updateWhere(s.Notifications, func(n models.Notification) bool { return n.ID == a.ID },
			func(n models.Notification) models.Notification {
				n.Read = true
				return n
			})
	case VerifyTutor:
		s.Tutors = updateWhere(s.Tutors, tutorID(a.ID), func(t models.Tutor) models.Tutor {
			t.Verified = true
			return t
		})
	case ApproveTutor:
		s.Tutors = updateWhere(s.Tutors, tutorID(a.ID), func(t models.Tutor) models.Tutor {
			t.Approved = true
			t.Verified = true
			return t
		})
	case VerifyPayment:
		s.PaymentVerifications = updateWhere(s.PaymentVerifications,
			func(p models.PaymentVerification) bool { return p.ID == a.ID },
			func(p models.PaymentVerification) models.PaymentVerification {
				p.Status = a.Status
				return p
			})

	/*── review queue ───────────────────────────────────────────────────*/

	case ApproveTutorCV:
		return approveCV(s, a.ID)
	case RejectTutorCV:
		s.PendingTutors = removeWhere(s.PendingTutors, tutorID(a.ID))

	default:
		return s
	}
	return s
}

// approveCV moves the pending application with the given id into the
// public listing. Exactly one listing with that id exists afterwards.
func approveCV(s State, id models.ID) State {
	i := slices.IndexFunc(s.PendingTutors, tutorID(id))
	if i < 0 {
		return s
	}
	t := s.PendingTutors[i]
	if !t.Approved {
		t.Rating = models.DefaultListingRating
		t.Reviews = 0
		t.CompletedLessons = 0
	}
	t.Approved = true
	t.Verified = true

	s.PendingTutors = removeWhere(s.PendingTutors, tutorID(id))
	s.Tutors = appendOne(removeWhere(s.Tutors, tutorID(id)), t)
	return s
}

func toggleDay(s State, day string) State {
	bd := s.BookingData
	if slices.Contains(bd.SelectedDays, day) {
		bd.SelectedDays = removeWhere(bd.SelectedDays, func(d string) bool { return d == day })
	} else {
		if len(bd.SelectedDays) >= bd.DaysPerWeek {
			return s
		}
		bd.SelectedDays = appendOne(bd.SelectedDays, day)
	}
	s.BookingData = bd
	return s
}

func tutorID(id models.ID) func(models.Tutor) bool {
	return func(t models.Tutor) bool { return t.ID == id }
}

// appendOne returns a new slice holding xs followed by x. The backing array
// of xs is never written.
func appendOne[T any](xs []T, x T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, x)
}

// updateWhere applies fn to every element that matches. When nothing
// matches xs itself is returned.
func updateWhere[T any](xs []T, match func(T) bool, fn func(T) T) []T {
	var out []T
	for i, x := range xs {
		if !match(x) {
			continue
		}
		if out == nil {
			out = slices.Clone(xs)
		}
		out[i] = fn(x)
	}
	if out == nil {
		return xs
	}
	return out
}

// removeWhere drops every matching element. When nothing matches xs itself
// is returned.
func removeWhere[T any](xs []T, match func(T) bool) []T {
	if !slices.ContainsFunc(xs, match) {
		return xs
	}
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if !match(x) {
			out = append(out, x)
		}
	}
	return out
}
