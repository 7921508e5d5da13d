// internal/domain/models/feedback.go
package models

import "time"

// Feedback is a student's review of a tutor.
type Feedback struct {
	ID        ID         `json:"id"`
	StudentID ID         `json:"studentId"`
	TutorID   ID         `json:"tutorId"`
	BookingID ID         `json:"bookingId,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`

	Extra Attrs `json:"-"`
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	type plain Feedback
	return encodeOpen(plain(f), f.Extra)
}

func (f *Feedback) UnmarshalJSON(data []byte) error {
	type plain Feedback
	var p plain
	extra, err := decodeOpen(data, &p)
	if err != nil {
		return err
	}
	*f = Feedback(p)
	f.Extra = extra
	return nil
}
