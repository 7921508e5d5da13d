// internal/domain/models/tutor.go
package models

// Tutor is a marketplace profile. Approved tutors are listed publicly;
// the rest wait in the admin review queue.
type Tutor struct {
	ID               ID       `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	Location         string   `json:"location,omitempty"`
	Specialties      []string `json:"specialties,omitempty"`
	HourlyRate       float64  `json:"hourlyRate"`
	Rating           float64  `json:"rating"`
	Reviews          int      `json:"reviews"`
	CompletedLessons int      `json:"completedLessons"`
	Verified         bool     `json:"verified"`
	Approved         bool     `json:"approved"`
	CVURL            string   `json:"cvUrl,omitempty"`

	Extra Attrs `json:"-"`
}

// Values used when a pending application becomes a listing.
const (
	DefaultListingRating = 4.5
)

func (t Tutor) MarshalJSON() ([]byte, error) {
	type plain Tutor
	return encodeOpen(plain(t), t.Extra)
}

func (t *Tutor) UnmarshalJSON(data []byte) error {
	type plain Tutor
	var p plain
	extra, err := decodeOpen(data, &p)
	if err != nil {
		return err
	}
	*t = Tutor(p)
	t.Extra = extra
	return nil
}
