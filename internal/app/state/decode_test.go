package state_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/domain/models"
)

func TestDecodeAction_UnknownTagIsNotAnError(t *testing.T) {
	a, err := state.DecodeAction([]byte(`{"type":"OPEN_CHAT","payload":{"x":1}}`))
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	u, ok := a.(state.Unknown)
	if !ok || u.Tag != "OPEN_CHAT" {
		t.Fatalf("got %#v, want Unknown{OPEN_CHAT}", a)
	}
	if state.Known("OPEN_CHAT") {
		t.Error("OPEN_CHAT should not be known")
	}
}

func TestDecodeAction_MissingType(t *testing.T) {
	_, err := state.DecodeAction([]byte(`{"payload":1}`))
	if !errors.Is(err, state.ErrNoType) {
		t.Errorf("got %v, want ErrNoType", err)
	}
}

func TestDecodeAction_BadPayload(t *testing.T) {
	if _, err := state.DecodeAction([]byte(`{"type":"SET_TUTORS","payload":{"id":1}}`)); err == nil {
		t.Error("expected error for object payload on SET_TUTORS")
	}
}

func TestDecodeAction_Payloads(t *testing.T) {
	cases := []struct {
		in    string
		check func(state.Action) bool
	}{
		{`{"type":"SET_USER","payload":{"user":{"id":1,"email":"a@b.c","role":"admin"},"role":"admin"}}`,
			func(a state.Action) bool {
				v, ok := a.(state.SetUser)
				return ok && v.User != nil && v.User.ID == "1" && v.Role == models.RoleAdmin
			}},
		{`{"type":"SET_PAGE","payload":{"page":"signup","signupRole":"tutor"}}`,
			func(a state.Action) bool {
				v, ok := a.(state.SetPage)
				return ok && v.Page == "signup" && v.SignupRole != nil && *v.SignupRole == models.RoleTutor
			}},
		{`{"type":"SET_PAGE","payload":{"page":"home"}}`,
			func(a state.Action) bool {
				v, ok := a.(state.SetPage)
				return ok && v.SignupRole == nil
			}},
		{`{"type":"SET_UI_STATE","payload":{"showLoginModal":false}}`,
			func(a state.Action) bool {
				v, ok := a.(state.SetUIState)
				return ok && v.Patch.ShowLoginModal != nil && !*v.Patch.ShowLoginModal && v.Patch.ShowSignupModal == nil
			}},
		{`{"type":"RESET_BOOKING_DATA"}`,
			func(a state.Action) bool { _, ok := a.(state.ResetBookingData); return ok }},
		{`{"type":"TOGGLE_BOOKING_DAY","payload":"mon"}`,
			func(a state.Action) bool { v, ok := a.(state.ToggleBookingDay); return ok && v.Day == "mon" }},
		{`{"type":"SET_TUTORS","payload":[{"id":1,"name":"Ada"},{"id":"2","name":"Brian"}]}`,
			func(a state.Action) bool { v, ok := a.(state.SetTutors); return ok && len(v.Tutors) == 2 }},
		{`{"type":"MARK_NOTIFICATION_READ","payload":12}`,
			func(a state.Action) bool { v, ok := a.(state.MarkNotificationRead); return ok && v.ID == "12" }},
		{`{"type":"UPDATE_BOOKING","payload":{"id":"b1","updates":{"status":"confirmed"}}}`,
			func(a state.Action) bool {
				v, ok := a.(state.UpdateBooking)
				return ok && v.ID == "b1" && len(v.Patch) == 1
			}},
		{`{"type":"VERIFY_PAYMENT","payload":{"id":"p1","status":"rejected"}}`,
			func(a state.Action) bool {
				v, ok := a.(state.VerifyPayment)
				return ok && v.ID == "p1" && v.Status == "rejected"
			}},
		{`{"type":"SET_PROFILE_EDITING","payload":{"editing":true}}`,
			func(a state.Action) bool {
				v, ok := a.(state.SetProfileEditing)
				return ok && v.Editing && v.Draft == nil
			}},
	}

	for _, c := range cases {
		a, err := state.DecodeAction([]byte(c.in))
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if !c.check(a) {
			t.Errorf("%s: decoded to %#v", c.in, a)
		}
	}
}

func TestDecodeAction_ThenReduce(t *testing.T) {
	s := state.Initial()
	for _, raw := range []string{
		`{"type":"UPDATE_BOOKING_DATA","payload":{"daysPerWeek":2}}`,
		`{"type":"TOGGLE_BOOKING_DAY","payload":"mon"}`,
		`{"type":"TOGGLE_BOOKING_DAY","payload":"tue"}`,
		`{"type":"TOGGLE_BOOKING_DAY","payload":"wed"}`,
	} {
		a, err := state.DecodeAction([]byte(raw))
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		s = state.Reduce(s, a)
	}
	if got := s.BookingData.SelectedDays; len(got) != 2 || got[0] != "mon" || got[1] != "tue" {
		t.Errorf("selected days: %v", got)
	}
}
