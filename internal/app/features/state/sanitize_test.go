package state

import (
	"strings"
	"testing"

	appstate "github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/domain/models"
)

func TestSanitize_TutorKeepsSafeBio(t *testing.T) {
	in := appstate.UpdateTutor{Tutor: models.Tutor{
		ID:   "1",
		Name: "<i>Ada</i>",
		Bio:  `<p>Maths <a href="javascript:alert(1)">tutor</a></p><script>x()</script>`,
	}}
	out := sanitize(in).(appstate.UpdateTutor)

	if out.Tutor.Name != "Ada" {
		t.Errorf("name: got %q", out.Tutor.Name)
	}
	if !strings.Contains(out.Tutor.Bio, "<p>") {
		t.Errorf("bio should keep safe markup, got %q", out.Tutor.Bio)
	}
	if strings.Contains(out.Tutor.Bio, "javascript") || strings.Contains(out.Tutor.Bio, "script") {
		t.Errorf("bio kept unsafe content: %q", out.Tutor.Bio)
	}
	if in.Tutor.Name != "<i>Ada</i>" {
		t.Error("input action was modified")
	}
}

func TestSanitize_ProfileDraftCopied(t *testing.T) {
	draft := &appstate.ProfileDraft{FullName: "<b>Bo</b>", Bio: "<em>hi</em>"}
	out := sanitize(appstate.SetProfileEditing{Editing: true, Draft: draft}).(appstate.SetProfileEditing)

	if out.Draft.FullName != "Bo" || out.Draft.Bio != "<em>hi</em>" {
		t.Errorf("draft: %+v", out.Draft)
	}
	if draft.FullName != "<b>Bo</b>" {
		t.Error("caller's draft was modified")
	}
}

func TestSanitize_NilPatchFieldsStayNil(t *testing.T) {
	out := sanitize(appstate.UpdateContactForm{}).(appstate.UpdateContactForm)
	if out.Patch.Name != nil || out.Patch.Message != nil {
		t.Error("absent fields must stay absent")
	}
}

func TestSanitize_OtherActionsUntouched(t *testing.T) {
	in := appstate.SetPage{Page: appstate.PageTutors}
	if got := sanitize(in); got != appstate.Action(in) {
		t.Errorf("got %#v", got)
	}
}
