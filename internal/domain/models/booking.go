// internal/domain/models/booking.go
package models

// Booking statuses as reported by the backend.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is a lesson purchase linking a student to a tutor.
type Booking struct {
	ID            ID       `json:"id"`
	StudentID     ID       `json:"studentId"`
	TutorID       ID       `json:"tutorId"`
	Status        string   `json:"status"`
	DaysPerWeek   int      `json:"daysPerWeek"`
	HoursPerDay   int      `json:"hoursPerDay"`
	SelectedDays  []string `json:"selectedDays,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	TotalCost     float64  `json:"totalCost"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	PaymentStatus string   `json:"paymentStatus,omitempty"`

	Extra Attrs `json:"-"`
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	return encodeOpen(plain(b), b.Extra)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var p plain
	extra, err := decodeOpen(data, &p)
	if err != nil {
		return err
	}
	*b = Booking(p)
	b.Extra = extra
	return nil
}
