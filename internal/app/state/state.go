// internal/app/state/state.go
package state

import (
	"slices"

	"github.com/dalemusser/tutorhub/internal/domain/models"
)

// Pages the UI can navigate to.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageSignup    = "signup"
	PageTutors    = "tutors"
	PageBooking   = "booking"
	PageDashboard = "dashboard"
	PageContact   = "contact"
)

// UI is view-only state: which overlays are open and what they point at.
type UI struct {
	ShowLoginModal    bool      `json:"showLoginModal"`
	ShowSignupModal   bool      `json:"showSignupModal"`
	ShowBookingModal  bool      `json:"showBookingModal"`
	ShowPaymentModal  bool      `json:"showPaymentModal"`
	ShowFeedbackModal bool      `json:"showFeedbackModal"`
	MobileMenuOpen    bool      `json:"mobileMenuOpen"`
	SelectedTutorID   models.ID `json:"selectedTutorId,omitempty"`
}

// UIPatch lists the UI fields an action wants to change. Nil fields are
// left alone.
type UIPatch struct {
	ShowLoginModal    *bool      `json:"showLoginModal,omitempty"`
	ShowSignupModal   *bool      `json:"showSignupModal,omitempty"`
	ShowBookingModal  *bool      `json:"showBookingModal,omitempty"`
	ShowPaymentModal  *bool      `json:"showPaymentModal,omitempty"`
	ShowFeedbackModal *bool      `json:"showFeedbackModal,omitempty"`
	MobileMenuOpen    *bool      `json:"mobileMenuOpen,omitempty"`
	SelectedTutorID   *models.ID `json:"selectedTutorId,omitempty"`
}

func (p UIPatch) apply(u UI) UI {
	setIf(&u.ShowLoginModal, p.ShowLoginModal)
	setIf(&u.ShowSignupModal, p.ShowSignupModal)
	setIf(&u.ShowBookingModal, p.ShowBookingModal)
	setIf(&u.ShowPaymentModal, p.ShowPaymentModal)
	setIf(&u.ShowFeedbackModal, p.ShowFeedbackModal)
	setIf(&u.MobileMenuOpen, p.MobileMenuOpen)
	setIf(&u.SelectedTutorID, p.SelectedTutorID)
	return u
}

// SearchFilters narrow the public tutor listing.
type SearchFilters struct {
	Query        string  `json:"query"`
	Subject      string  `json:"subject"`
	Location     string  `json:"location"`
	MinRating    float64 `json:"minRating"`
	MaxRate      float64 `json:"maxRate"` // 0 means no limit
	VerifiedOnly bool    `json:"verifiedOnly"`
}

type SearchPatch struct {
	Query        *string  `json:"query,omitempty"`
	Subject      *string  `json:"subject,omitempty"`
	Location     *string  `json:"location,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	MaxRate      *float64 `json:"maxRate,omitempty"`
	VerifiedOnly *bool    `json:"verifiedOnly,omitempty"`
}

func (p SearchPatch) apply(f SearchFilters) SearchFilters {
	setIf(&f.Query, p.Query)
	setIf(&f.Subject, p.Subject)
	setIf(&f.Location, p.Location)
	setIf(&f.MinRating, p.MinRating)
	setIf(&f.MaxRate, p.MaxRate)
	setIf(&f.VerifiedOnly, p.VerifiedOnly)
	return f
}

// ContactForm buffers the public contact form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactFormPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message *string `json:"message,omitempty"`
}

func (p ContactFormPatch) apply(c ContactForm) ContactForm {
	setIf(&c.Name, p.Name)
	setIf(&c.Email, p.Email)
	setIf(&c.Subject, p.Subject)
	setIf(&c.Message, p.Message)
	return c
}

// ProfileModal is the tutor profile overlay.
type ProfileModal struct {
	Open    bool      `json:"open"`
	TutorID models.ID `json:"tutorId,omitempty"`
}

type ProfileModalPatch struct {
	Open    *bool      `json:"open,omitempty"`
	TutorID *models.ID `json:"tutorId,omitempty"`
}

func (p ProfileModalPatch) apply(m ProfileModal) ProfileModal {
	setIf(&m.Open, p.Open)
	setIf(&m.TutorID, p.TutorID)
	return m
}

// BookingData is the in-progress booking form.
type BookingData struct {
	DaysPerWeek   int      `json:"daysPerWeek"`
	HoursPerDay   int      `json:"hoursPerDay"`
	SelectedDays  []string `json:"selectedDays"`
	StartDate     string   `json:"startDate,omitempty"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
}

type BookingDataPatch struct {
	DaysPerWeek   *int      `json:"daysPerWeek,omitempty"`
	HoursPerDay   *int      `json:"hoursPerDay,omitempty"`
	SelectedDays  *[]string `json:"selectedDays,omitempty"`
	StartDate     *string   `json:"startDate,omitempty"`
	PaymentMethod *string   `json:"paymentMethod,omitempty"`
}

func (p BookingDataPatch) apply(b BookingData) BookingData {
	setIf(&b.DaysPerWeek, p.DaysPerWeek)
	setIf(&b.HoursPerDay, p.HoursPerDay)
	if p.SelectedDays != nil {
		b.SelectedDays = slices.Clone(*p.SelectedDays)
	}
	setIf(&b.StartDate, p.StartDate)
	setIf(&b.PaymentMethod, p.PaymentMethod)
	return b
}

// ProfileDraft is the edit buffer behind the profile form.
type ProfileDraft struct {
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Location    string   `json:"location,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	HourlyRate  float64  `json:"hourlyRate,omitempty"`
}

// State is one immutable snapshot of everything the UI renders from.
// Reduce never writes into a slice it received; it allocates a new one.
type State struct {
	CurrentUser *models.User `json:"currentUser"`
	UserRole    models.Role  `json:"userRole"`
	CurrentPage string       `json:"currentPage"`
	SignupRole  models.Role  `json:"signupRole"`

	UI            UI            `json:"ui"`
	SearchFilters SearchFilters `json:"searchFilters"`
	ContactForm   ContactForm   `json:"contactForm"`
	ProfileModal  ProfileModal  `json:"profileModal"`
	BookingData   BookingData   `json:"bookingData"`

	ProfileEditing bool          `json:"profileEditing"`
	ProfileDraft   *ProfileDraft `json:"profileDraft"`

	Tutors               []models.Tutor               `json:"tutors"`
	PendingTutors        []models.Tutor               `json:"pendingTutors"`
	Students             []models.Student             `json:"students"`
	Bookings             []models.Booking             `json:"bookings"`
	Feedbacks            []models.Feedback            `json:"feedbacks"`
	PaymentVerifications []models.PaymentVerification `json:"paymentVerifications"`
	Notifications        []models.Notification        `json:"notifications"`
}

// Initial returns the anonymous starting state.
func Initial() State {
	return State{
		CurrentPage:          PageHome,
		SignupRole:           models.RoleStudent,
		BookingData:          DefaultBookingData(),
		Tutors:               []models.Tutor{},
		PendingTutors:        []models.Tutor{},
		Students:             []models.Student{},
		Bookings:             []models.Booking{},
		Feedbacks:            []models.Feedback{},
		PaymentVerifications: []models.PaymentVerification{},
		Notifications:        []models.Notification{},
	}
}

// DefaultBookingData is what RESET_BOOKING_DATA restores.
func DefaultBookingData() BookingData {
	return BookingData{DaysPerWeek: 1, HoursPerDay: 1, SelectedDays: []string{}}
}

// DefaultContactForm is what RESET_CONTACT_FORM restores.
func DefaultContactForm() ContactForm {
	return ContactForm{}
}

// SignedIn reports whether a user is present.
func (s State) SignedIn() bool {
	return s.CurrentUser != nil && s.UserRole != models.RoleAnonymous
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
