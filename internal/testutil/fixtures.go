package testutil

import "github.com/dalemusser/tutorhub/internal/domain/models"

// Fixture accounts known to the fake backend.
const (
	AdminEmail    = "admin@test.com"
	StudentEmail  = "student@test.com"
	TutorEmail    = "tutor@test.com"
	ValidPassword = "correct-horse"
)

// AdminUser returns the admin identity served by the fake backend.
func AdminUser() models.User {
	return models.User{ID: "u-admin", FullName: "Test Admin", Email: AdminEmail, Role: models.RoleAdmin}
}

// StudentUser returns the student identity served by the fake backend.
func StudentUser() models.User {
	return models.User{ID: "u-student", FullName: "Test Student", Email: StudentEmail, Role: models.RoleStudent}
}

// TutorUser returns the tutor identity served by the fake backend.
func TutorUser() models.User {
	return models.User{ID: "u-tutor", FullName: "Test Tutor", Email: TutorEmail, Role: models.RoleTutor}
}

// Tutors is the approved listing.
func Tutors() []models.Tutor {
	return []models.Tutor{
		{ID: "1", Name: "Ada Lovelace", Specialties: []string{"Mathematics"}, HourlyRate: 30, Rating: 4.9, Reviews: 12, Verified: true, Approved: true},
		{ID: "2", Name: "Brian Ng", Specialties: []string{"English"}, HourlyRate: 20, Rating: 4.3, Reviews: 4, Approved: true},
	}
}

// PendingTutors is the admin review queue.
func PendingTutors() []models.Tutor {
	return []models.Tutor{
		{ID: "3", Name: "Chen Li", Specialties: []string{"Chemistry"}, HourlyRate: 25, CVURL: "https://cdn.test/cv/3.pdf"},
	}
}

func Students() []models.Student {
	return []models.Student{{ID: "s1", Name: "Dana Park", Email: StudentEmail}}
}

func Bookings() []models.Booking {
	return []models.Booking{{
		ID: "b1", StudentID: "s1", TutorID: "1", Status: models.BookingPending,
		DaysPerWeek: 2, HoursPerDay: 1, SelectedDays: []string{"mon", "thu"}, TotalCost: 240,
	}}
}

func Notifications() []models.Notification {
	return []models.Notification{
		{ID: "n1", Title: "Welcome", Message: "Welcome to TutorHub"},
		{ID: "n2", Title: "Booking", Message: "Your booking is pending", Read: true},
	}
}

func Feedbacks() []models.Feedback {
	return []models.Feedback{{ID: "f1", StudentID: "s1", TutorID: "1", Rating: 5, Comment: "Great lesson"}}
}

func PaymentVerifications() []models.PaymentVerification {
	return []models.PaymentVerification{{ID: "p1", BookingID: "b1", Amount: 240, Status: models.PaymentPending}}
}
