package state

import (
	appstate "github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tutorhub/internal/domain/models"
)

// sanitize cleans the free text an action carries before it is dispatched.
// Bios keep safe HTML; every other human-entered field becomes plain text.
func sanitize(a appstate.Action) appstate.Action {
	switch a := a.(type) {
	case appstate.UpdateContactForm:
		p := a.Patch
		p.Name = plainPtr(p.Name)
		p.Email = plainPtr(p.Email)
		p.Subject = plainPtr(p.Subject)
		p.Message = plainPtr(p.Message)
		return appstate.UpdateContactForm{Patch: p}

	case appstate.AddFeedback:
		a.Feedback.Comment = htmlsanitize.Plain(a.Feedback.Comment)
		return a

	case appstate.AddTutor:
		a.Tutor = tutor(a.Tutor)
		return a
	case appstate.AddPendingTutor:
		a.Tutor = tutor(a.Tutor)
		return a
	case appstate.UpdateTutor:
		a.Tutor = tutor(a.Tutor)
		return a

	case appstate.SetProfileEditing:
		if a.Draft != nil {
			d := *a.Draft
			d.FullName = htmlsanitize.Plain(d.FullName)
			d.Phone = htmlsanitize.Plain(d.Phone)
			d.Location = htmlsanitize.Plain(d.Location)
			d.Bio = htmlsanitize.Sanitize(d.Bio)
			a.Draft = &d
		}
		return a

	case appstate.SetSearchFilters:
		a.Patch.Query = plainPtr(a.Patch.Query)
		return a
	}
	return a
}

func tutor(t models.Tutor) models.Tutor {
	t.Name = htmlsanitize.Plain(t.Name)
	t.Location = htmlsanitize.Plain(t.Location)
	t.Bio = htmlsanitize.Sanitize(t.Bio)
	return t
}

func plainPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := htmlsanitize.Plain(*s)
	return &v
}
