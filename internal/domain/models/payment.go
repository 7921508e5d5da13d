// internal/domain/models/payment.go
package models

import "time"

// Payment verification statuses.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// PaymentVerification is an uploaded proof of payment for a booking,
// waiting for (or past) admin review.
type PaymentVerification struct {
	ID          ID         `json:"id"`
	BookingID   ID         `json:"bookingId"`
	StudentID   ID         `json:"studentId,omitempty"`
	TutorID     ID         `json:"tutorId,omitempty"`
	Amount      float64    `json:"amount"`
	Method      string     `json:"method,omitempty"`
	ProofURL    string     `json:"proofUrl,omitempty"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`

	Extra Attrs `json:"-"`
}

func (p PaymentVerification) MarshalJSON() ([]byte, error) {
	type plain PaymentVerification
	return encodeOpen(plain(p), p.Extra)
}

func (p *PaymentVerification) UnmarshalJSON(data []byte) error {
	type plain PaymentVerification
	var v plain
	extra, err := decodeOpen(data, &v)
	if err != nil {
		return err
	}
	*p = PaymentVerification(v)
	p.Extra = extra
	return nil
}
