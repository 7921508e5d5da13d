// internal/app/state/actions.go
package state

import "github.com/dalemusser/tutorhub/internal/domain/models"

// Action is one requested state transition. The set of concrete types
// below is closed; Reduce ignores anything else.
type Action interface {
	Type() string
}

// Action tags, as carried on the wire.
const (
	TypeSetUser        = "SET_USER"
	TypeSetPage        = "SET_PAGE"
	TypeSetUIState     = "SET_UI_STATE"
	TypeSetSearch      = "SET_SEARCH_FILTERS"
	TypeUpdateContact  = "UPDATE_CONTACT_FORM"
	TypeResetContact   = "RESET_CONTACT_FORM"
	TypeUpdateProfile  = "UPDATE_PROFILE_MODAL"
	TypeUpdateBookData = "UPDATE_BOOKING_DATA"
	TypeResetBookData  = "RESET_BOOKING_DATA"
	TypeToggleBookDay  = "TOGGLE_BOOKING_DAY"
	TypeSetEditing     = "SET_PROFILE_EDITING"

	TypeSetTutors               = "SET_TUTORS"
	TypeSetPendingTutors        = "SET_PENDING_TUTORS"
	TypeSetStudents             = "SET_STUDENTS"
	TypeSetBookings             = "SET_BOOKINGS"
	TypeSetFeedbacks            = "SET_FEEDBACKS"
	TypeSetPaymentVerifications = "SET_PAYMENT_VERIFICATIONS"
	TypeSetNotifications        = "SET_NOTIFICATIONS"

	TypeAddTutor               = "ADD_TUTOR"
	TypeAddPendingTutor        = "ADD_PENDING_TUTOR"
	TypeAddStudent             = "ADD_STUDENT"
	TypeAddBooking             = "ADD_BOOKING"
	TypeAddFeedback            = "ADD_FEEDBACK"
	TypeAddPaymentVerification = "ADD_PAYMENT_VERIFICATION"
	TypeAddNotification        = "ADD_NOTIFICATION"

	TypeUpdateTutor          = "UPDATE_TUTOR"
	TypeUpdateStudent        = "UPDATE_STUDENT"
	TypeUpdateBooking        = "UPDATE_BOOKING"
	TypeMarkNotificationRead = "MARK_NOTIFICATION_READ"
	TypeVerifyTutor          = "VERIFY_TUTOR"
	TypeApproveTutor         = "APPROVE_TUTOR"
	TypeApproveTutorCV       = "APPROVE_TUTOR_CV"
	TypeRejectTutorCV        = "REJECT_TUTOR_CV"
	TypeVerifyPayment        = "VERIFY_PAYMENT"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session / navigation                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SetUser replaces the current user. A nil User with an empty Role is the
// anonymous user.
type SetUser struct {
	User *models.User
	Role models.Role
}

// Anonymous is the SetUser that signs everybody out of the state.
func Anonymous() SetUser { return SetUser{} }

// SetPage navigates. SignupRole is only replaced when non-nil.
type SetPage struct {
	Page       string
	SignupRole *models.Role
}

/*─────────────────────────────────────────────────────────────────────────────*
| View state                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type SetUIState struct{ Patch UIPatch }
type SetSearchFilters struct{ Patch SearchPatch }
type UpdateContactForm struct{ Patch ContactFormPatch }
type ResetContactForm struct{}
type UpdateProfileModal struct{ Patch ProfileModalPatch }
type UpdateBookingData struct{ Patch BookingDataPatch }
type ResetBookingData struct{}

// ToggleBookingDay selects or deselects one weekday on the booking form.
// Selecting is refused once DaysPerWeek days are already chosen.
type ToggleBookingDay struct{ Day string }

// SetProfileEditing flips the editing flag. Draft replaces the edit buffer
// only when non-nil.
type SetProfileEditing struct {
	Editing bool
	Draft   *ProfileDraft
}

/*─────────────────────────────────────────────────────────────────────────────*
| Collections                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

type SetTutors struct{ Tutors []models.Tutor }
type SetPendingTutors struct{ Tutors []models.Tutor }
type SetStudents struct{ Students []models.Student }
type SetBookings struct{ Bookings []models.Booking }
type SetFeedbacks struct{ Feedbacks []models.Feedback }
type SetPaymentVerifications struct {
	Verifications []models.PaymentVerification
}
type SetNotifications struct{ Notifications []models.Notification }

type AddTutor struct{ Tutor models.Tutor }
type AddPendingTutor struct{ Tutor models.Tutor }
type AddStudent struct{ Student models.Student }
type AddBooking struct{ Booking models.Booking }
type AddFeedback struct{ Feedback models.Feedback }
type AddPaymentVerification struct {
	Verification models.PaymentVerification
}
type AddNotification struct{ Notification models.Notification }

// UpdateTutor replaces every tutor whose id matches Tutor.ID.
type UpdateTutor struct{ Tutor models.Tutor }

// UpdateStudent replaces every student whose id matches Student.ID.
type UpdateStudent struct{ Student models.Student }

// UpdateBooking shallow-merges Patch into the booking with the given id.
type UpdateBooking struct {
	ID    models.ID
	Patch models.Attrs
}

type MarkNotificationRead struct{ ID models.ID }
type VerifyTutor struct{ ID models.ID }
type ApproveTutor struct{ ID models.ID }

// ApproveTutorCV moves a pending application into the public listing.
type ApproveTutorCV struct{ ID models.ID }

// RejectTutorCV drops a pending application.
type RejectTutorCV struct{ ID models.ID }

type VerifyPayment struct {
	ID     models.ID
	Status string
}

// Unknown carries a tag this build does not recognize. Reduce treats it as
// a no-op so newer clients do not break older ones.
type Unknown struct{ Tag string }

func (SetUser) Type() string                 { return TypeSetUser }
func (SetPage) Type() string                 { return TypeSetPage }
func (SetUIState) Type() string              { return TypeSetUIState }
func (SetSearchFilters) Type() string        { return TypeSetSearch }
func (UpdateContactForm) Type() string       { return TypeUpdateContact }
func (ResetContactForm) Type() string        { return TypeResetContact }
func (UpdateProfileModal) Type() string      { return TypeUpdateProfile }
func (UpdateBookingData) Type() string       { return TypeUpdateBookData }
func (ResetBookingData) Type() string        { return TypeResetBookData }
func (ToggleBookingDay) Type() string        { return TypeToggleBookDay }
func (SetProfileEditing) Type() string       { return TypeSetEditing }
func (SetTutors) Type() string               { return TypeSetTutors }
func (SetPendingTutors) Type() string        { return TypeSetPendingTutors }
func (SetStudents) Type() string             { return TypeSetStudents }
func (SetBookings) Type() string             { return TypeSetBookings }
func (SetFeedbacks) Type() string            { return TypeSetFeedbacks }
func (SetPaymentVerifications) Type() string { return TypeSetPaymentVerifications }
func (SetNotifications) Type() string        { return TypeSetNotifications }
func (AddTutor) Type() string                { return TypeAddTutor }
func (AddPendingTutor) Type() string         { return TypeAddPendingTutor }
func (AddStudent) Type() string              { return TypeAddStudent }
func (AddBooking) Type() string              { return TypeAddBooking }
func (AddFeedback) Type() string             { return TypeAddFeedback }
func (AddPaymentVerification) Type() string  { return TypeAddPaymentVerification }
func (AddNotification) Type() string         { return TypeAddNotification }
func (UpdateTutor) Type() string             { return TypeUpdateTutor }
func (UpdateStudent) Type() string           { return TypeUpdateStudent }
func (UpdateBooking) Type() string           { return TypeUpdateBooking }
func (MarkNotificationRead) Type() string    { return TypeMarkNotificationRead }
func (VerifyTutor) Type() string             { return TypeVerifyTutor }
func (ApproveTutor) Type() string            { return TypeApproveTutor }
func (ApproveTutorCV) Type() string          { return TypeApproveTutorCV }
func (RejectTutorCV) Type() string           { return TypeRejectTutorCV }
func (VerifyPayment) Type() string           { return TypeVerifyPayment }
func (u Unknown) Type() string               { return u.Tag }
