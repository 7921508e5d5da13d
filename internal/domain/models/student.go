// internal/domain/models/student.go
package models

// Student is a learner profile. Only admins see the full list.
type Student struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Grade string `json:"grade,omitempty"`

	Extra Attrs `json:"-"`
}

func (s Student) MarshalJSON() ([]byte, error) {
	type plain Student
	return encodeOpen(plain(s), s.Extra)
}

func (s *Student) UnmarshalJSON(data []byte) error {
	type plain Student
	var p plain
	extra, err := decodeOpen(data, &p)
	if err != nil {
		return err
	}
	*s = Student(p)
	s.Extra = extra
	return nil
}
