// internal/app/state/decode.go
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dalemusser/tutorhub/internal/domain/models"
)

// ErrNoType is returned for an envelope without a type tag.
var ErrNoType = errors.New("action has no type")

// Envelope is the wire form of an action: {"type": "...", "payload": ...}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type decoder func(json.RawMessage) (Action, error)

// payload builds a decoder that unmarshals the payload as T and wraps it.
// A missing or null payload decodes as the zero T.
func payload[T any](wrap func(T) Action) decoder {
	return func(raw json.RawMessage) (Action, error) {
		var v T
		if len(raw) != 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
		}
		return wrap(v), nil
	}
}

type userPayload struct {
	User *models.User `json:"user"`
	Role models.Role  `json:"role"`
}

type pagePayload struct {
	Page       string       `json:"page"`
	SignupRole *models.Role `json:"signupRole,omitempty"`
}

type editingPayload struct {
	Editing bool          `json:"editing"`
	Draft   *ProfileDraft `json:"draft,omitempty"`
}

type bookingPatchPayload struct {
	ID      models.ID    `json:"id"`
	Updates models.Attrs `json:"updates"`
}

type statusPayload struct {
	ID     models.ID `json:"id"`
	Status string    `json:"status"`
}

var decoders = map[string]decoder{
	TypeSetUser: payload(func(p userPayload) Action { return SetUser{User: p.User, Role: p.Role} }),
	TypeSetPage: payload(func(p pagePayload) Action { return SetPage{Page: p.Page, SignupRole: p.SignupRole} }),

	TypeSetUIState:     payload(func(p UIPatch) Action { return SetUIState{Patch: p} }),
	TypeSetSearch:      payload(func(p SearchPatch) Action { return SetSearchFilters{Patch: p} }),
	TypeUpdateContact:  payload(func(p ContactFormPatch) Action { return UpdateContactForm{Patch: p} }),
	TypeResetContact:   payload(func(struct{}) Action { return ResetContactForm{} }),
	TypeUpdateProfile:  payload(func(p ProfileModalPatch) Action { return UpdateProfileModal{Patch: p} }),
	TypeUpdateBookData: payload(func(p BookingDataPatch) Action { return UpdateBookingData{Patch: p} }),
	TypeResetBookData:  payload(func(struct{}) Action { return ResetBookingData{} }),
	TypeToggleBookDay:  payload(func(day string) Action { return ToggleBookingDay{Day: day} }),
	TypeSetEditing: payload(func(p editingPayload) Action {
		return SetProfileEditing{Editing: p.Editing, Draft: p.Draft}
	}),

	TypeSetTutors:        payload(func(v []models.Tutor) Action { return SetTutors{Tutors: v} }),
	TypeSetPendingTutors: payload(func(v []models.Tutor) Action { return SetPendingTutors{Tutors: v} }),
	TypeSetStudents:      payload(func(v []models.Student) Action { return SetStudents{Students: v} }),
	TypeSetBookings:      payload(func(v []models.Booking) Action { return SetBookings{Bookings: v} }),
	TypeSetFeedbacks:     payload(func(v []models.Feedback) Action { return SetFeedbacks{Feedbacks: v} }),
	TypeSetPaymentVerifications: payload(func(v []models.PaymentVerification) Action {
		return SetPaymentVerifications{Verifications: v}
	}),
	TypeSetNotifications: payload(func(v []models.Notification) Action { return SetNotifications{Notifications: v} }),

	TypeAddTutor:        payload(func(v models.Tutor) Action { return AddTutor{Tutor: v} }),
	TypeAddPendingTutor: payload(func(v models.Tutor) Action { return AddPendingTutor{Tutor: v} }),
	TypeAddStudent:      payload(func(v models.Student) Action { return AddStudent{Student: v} }),
	TypeAddBooking:      payload(func(v models.Booking) Action { return AddBooking{Booking: v} }),
	TypeAddFeedback:     payload(func(v models.Feedback) Action { return AddFeedback{Feedback: v} }),
	TypeAddPaymentVerification: payload(func(v models.PaymentVerification) Action {
		return AddPaymentVerification{Verification: v}
	}),
	TypeAddNotification: payload(func(v models.Notification) Action { return AddNotification{Notification: v} }),

	TypeUpdateTutor:   payload(func(v models.Tutor) Action { return UpdateTutor{Tutor: v} }),
	TypeUpdateStudent: payload(func(v models.Student) Action { return UpdateStudent{Student: v} }),
	TypeUpdateBooking: payload(func(p bookingPatchPayload) Action {
		return UpdateBooking{ID: p.ID, Patch: p.Updates}
	}),
	TypeMarkNotificationRead: payload(func(id models.ID) Action { return MarkNotificationRead{ID: id} }),
	TypeVerifyTutor:          payload(func(id models.ID) Action { return VerifyTutor{ID: id} }),
	TypeApproveTutor:         payload(func(id models.ID) Action { return ApproveTutor{ID: id} }),
	TypeApproveTutorCV:       payload(func(id models.ID) Action { return ApproveTutorCV{ID: id} }),
	TypeRejectTutorCV:        payload(func(id models.ID) Action { return RejectTutorCV{ID: id} }),
	TypeVerifyPayment: payload(func(p statusPayload) Action {
		return VerifyPayment{ID: p.ID, Status: p.Status}
	}),
}

// Known reports whether tag names an action this build understands.
func Known(tag string) bool {
	_, ok := decoders[tag]
	return ok
}

// DecodeAction turns an envelope into a typed Action. Unrecognized tags
// become Unknown rather than an error; a payload that does not fit its tag
// is an error.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	return env.Action()
}

// Action decodes the payload according to the envelope's tag.
func (e Envelope) Action() (Action, error) {
	if e.Type == "" {
		return nil, ErrNoType
	}
	dec, ok := decoders[e.Type]
	if !ok {
		return Unknown{Tag: e.Type}, nil
	}
	a, err := dec(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return a, nil
}
