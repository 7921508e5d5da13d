package syncer

import (
	"context"

	"github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/domain/models"
)

// Backend is the subset of the marketplace API the synchronizer reads.
// *apiclient.Client satisfies it.
type Backend interface {
	Me(ctx context.Context, token string) (models.User, error)
	Tutors(ctx context.Context, token string) ([]models.Tutor, error)
	Students(ctx context.Context, token string) ([]models.Student, error)
	PendingTutors(ctx context.Context, token string) ([]models.Tutor, error)
	Bookings(ctx context.Context, token string) ([]models.Booking, error)
	Notifications(ctx context.Context, token string) ([]models.Notification, error)
	Feedbacks(ctx context.Context, token string) ([]models.Feedback, error)
	PaymentVerifications(ctx context.Context, token string) ([]models.PaymentVerification, error)
}

// Step is one fetch of the bootstrap and the action its result becomes.
type Step struct {
	Name  string
	Fetch func(ctx context.Context, b Backend, token string) (state.Action, error)
}

// Plan lists, per role, the steps that follow a successful identity fetch.
// Steps run in slice order. A role with no entry fetches nothing further.
type Plan map[models.Role][]Step

// Steps returns the steps for role.
func (p Plan) Steps(role models.Role) []Step {
	return p[role]
}

func step[T any](name string, fetch func(Backend, context.Context, string) ([]T, error), wrap func([]T) state.Action) Step {
	return Step{
		Name: name,
		Fetch: func(ctx context.Context, b Backend, token string) (state.Action, error) {
			v, err := fetch(b, ctx, token)
			if err != nil {
				return nil, err
			}
			return wrap(v), nil
		},
	}
}

// The individual fetches.
var (
	FetchTutors = step("tutors", Backend.Tutors,
		func(v []models.Tutor) state.Action { return state.SetTutors{Tutors: v} })
	FetchStudents = step("students", Backend.Students,
		func(v []models.Student) state.Action { return state.SetStudents{Students: v} })
	FetchBookings = step("bookings", Backend.Bookings,
		func(v []models.Booking) state.Action { return state.SetBookings{Bookings: v} })
	FetchNotifications = step("notifications", Backend.Notifications,
		func(v []models.Notification) state.Action { return state.SetNotifications{Notifications: v} })
	FetchFeedbacks = step("feedbacks", Backend.Feedbacks,
		func(v []models.Feedback) state.Action { return state.SetFeedbacks{Feedbacks: v} })
	FetchPaymentVerifications = step("payment-verifications", Backend.PaymentVerifications,
		func(v []models.PaymentVerification) state.Action {
			return state.SetPaymentVerifications{Verifications: v}
		})
	FetchPendingTutors = step("pending-tutors", Backend.PendingTutors,
		func(v []models.Tutor) state.Action { return state.SetPendingTutors{Tutors: v} })
)

// DefaultPlan is the marketplace's bootstrap: everyone loads tutors,
// bookings, notifications and feedbacks; admins also load students, the
// payment queue and the tutor application queue, interleaved in that order.
func DefaultPlan() Plan {
	common := []Step{FetchTutors, FetchBookings, FetchNotifications, FetchFeedbacks}
	return Plan{
		models.RoleStudent: common,
		models.RoleTutor:   common,
		models.RoleAdmin: {
			FetchTutors,
			FetchStudents,
			FetchBookings,
			FetchNotifications,
			FetchFeedbacks,
			FetchPaymentVerifications,
			FetchPendingTutors,
		},
	}
}
